// Command propbind-lint checks YAML schema documents for declaration
// problems: structural invariants, defaults that their own entry would
// reject, and enum tables with duplicate names or values.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-propbind/pkg/coerce"
	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint YAML operation schemas for declaration problems.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"schemas"}
	}

	var violations []violation
	for _, path := range paths {
		files, err := expand(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, file := range files {
			violations = append(violations, lintFile(file)...)
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func lintFile(path string) []violation {
	schemas, err := schema.LoadFile(path)
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}
	}

	var result []violation
	for _, s := range schemas {
		result = append(result, lintSchema(path, s)...)
	}
	return result
}

func lintSchema(file string, s schema.Schema) []violation {
	var result []violation
	coercer := coerce.New()

	for _, entry := range s.Entries {
		location := s.Operation + " > " + entry.Name

		result = append(result, lintEnum(file, location, entry)...)

		if entry.Default == nil {
			continue
		}
		// reference and layer defaults need a live host to check
		if entry.Kind == model.KindObjectRef || entry.Kind == model.KindLayerMask {
			continue
		}
		coerced, err := coercer.Coerce(entry.Name, entry.Default, entry.Member())
		if err != nil {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("default %v is not a valid %s", entry.Default, entry.Kind),
			})
			continue
		}
		result = append(result, lintDefaultRange(file, location, entry, coerced)...)
	}
	return result
}

func lintEnum(file, location string, entry schema.Entry) []violation {
	var result []violation
	names := map[string]bool{}
	values := map[int]string{}
	for _, member := range entry.Enum {
		key := strings.ToLower(member.Name)
		if names[key] {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("duplicate enum member %q", member.Name),
			})
		}
		names[key] = true
		if prior, dup := values[member.Value]; dup {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("enum members %q and %q share value %d", prior, member.Name, member.Value),
			})
		} else {
			values[member.Value] = member.Name
		}
	}
	return result
}

func lintDefaultRange(file, location string, entry schema.Entry, coerced any) []violation {
	num, ok := asFloat(coerced)
	if !ok {
		return nil
	}
	if entry.Min != nil && num < *entry.Min {
		return []violation{{
			file:     file,
			location: location,
			message:  fmt.Sprintf("default %v < min %v", coerced, *entry.Min),
		}}
	}
	if entry.Max != nil && num > *entry.Max {
		return []violation{{
			file:     file,
			location: location,
			message:  fmt.Sprintf("default %v > max %v", coerced, *entry.Max),
		}}
	}
	return nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
