package model

import "strings"

// Access distinguishes how a member is backed on the live instance.
type Access string

const (
	// AccessField marks a member backed by a plain field.
	AccessField Access = "field"
	// AccessAccessor marks a member backed by a getter/setter pair.
	AccessAccessor Access = "accessor"
)

// EnumMember is one declared value of an enum-kind member.
type EnumMember struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MemberDescriptor describes one assignable member of a host type: its name,
// declared value kind, and how it is backed. Enum members, the required
// reference kind, and the nested type name are populated only for the kinds
// that need them.
type MemberDescriptor struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Access   Access `json:"access"`
	ReadOnly bool   `json:"readOnly,omitempty"`
	// Enum lists the declared members when Kind is KindEnum.
	Enum []EnumMember `json:"enum,omitempty"`
	// RefKind names the required reference kind when Kind is KindObjectRef.
	RefKind string `json:"refKind,omitempty"`
	// TypeName names the nested object's canonical type when Kind is
	// KindObject, so binders can descend through the member.
	TypeName string `json:"typeName,omitempty"`
}

// TypeDescriptor is the resolved runtime handle for one host type: its
// canonical name and the ordered list of assignable members. Descriptors are
// immutable once constructed and cached by canonical name.
type TypeDescriptor struct {
	Name    string             `json:"name"`
	Members []MemberDescriptor `json:"members"`
}

// Member returns the member with the given name, matched case-insensitively.
func (d TypeDescriptor) Member(name string) (MemberDescriptor, bool) {
	for _, m := range d.Members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return MemberDescriptor{}, false
}

// MemberNames returns the member names in declaration order.
func (d TypeDescriptor) MemberNames() []string {
	names := make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		names = append(names, m.Name)
	}
	return names
}

// Target is a live instance being configured, paired with the canonical name
// of its type. The engine borrows the instance for the duration of one
// binding pass and never retains it.
type Target struct {
	Type     string
	Instance any
}
