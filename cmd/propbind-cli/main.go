// Command propbind-cli validates an operation payload against a schema
// directory and prints the merged configuration. With -interactive it prompts
// for each schema entry instead of reading a payload document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-propbind/pkg/engine"
	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/schema"
)

func main() {
	schemasDir := flag.String("schemas", "schemas", "directory of YAML schema documents")
	operation := flag.String("operation", "", "operation whose schema governs the payload")
	payloadPath := flag.String("payload", "", "JSON payload file (stdin if -)")
	interactive := flag.Bool("interactive", false, "prompt for each schema entry")
	flag.Parse()

	if *operation == "" {
		log.Fatal("missing -operation")
	}

	registry, err := schema.LoadDir(*schemasDir)
	if err != nil {
		log.Fatalf("load schemas: %v", err)
	}
	s, err := registry.Get(*operation)
	if err != nil {
		log.Fatalf("%v (known: %s)", err, strings.Join(registry.List(), ", "))
	}

	payload, err := collectPayload(s, *payloadPath, *interactive)
	if err != nil {
		log.Fatalf("collect payload: %v", err)
	}

	validator := schema.NewValidator()
	result := validator.Validate(payload, s)

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if !result.Valid {
		for _, issue := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", issue)
		}
		os.Exit(1)
	}

	out, err := json.MarshalIndent(merged(result.Merged), "", "  ")
	if err != nil {
		log.Fatalf("encode merged config: %v", err)
	}
	fmt.Println(string(out))
}

func collectPayload(s schema.Schema, path string, interactive bool) (map[string]any, error) {
	if interactive {
		return promptPayload(s)
	}
	if path == "" {
		return nil, fmt.Errorf("missing -payload (or pass -interactive)")
	}
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return engine.PayloadFromJSON(raw)
}

// promptPayload asks for each schema entry in declaration order. Empty
// answers skip optional entries so defaults apply.
func promptPayload(s schema.Schema) (map[string]any, error) {
	payload := make(map[string]any, len(s.Entries))
	for _, entry := range s.Entries {
		value, ok, err := promptEntry(entry)
		if err != nil {
			return nil, err
		}
		if ok {
			payload[entry.Name] = value
		}
	}
	return payload, nil
}

func promptEntry(entry schema.Entry) (any, bool, error) {
	label := fmt.Sprintf("%s (%s)", entry.Name, entry.Kind)

	switch entry.Kind {
	case model.KindBool:
		out := false
		if entry.Default == true {
			out = true
		}
		prompt := &survey.Confirm{Message: label, Default: out}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, false, err
		}
		return out, true, nil
	case model.KindEnum:
		names := make([]string, 0, len(entry.Enum))
		for _, m := range entry.Enum {
			names = append(names, m.Name)
		}
		var out string
		prompt := &survey.Select{Message: label, Options: names}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, false, err
		}
		return out, true, nil
	default:
		var out string
		prompt := &survey.Input{Message: label, Help: helpFor(entry)}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, false, err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return nil, false, nil
		}
		if decoded, ok := decodeAnswer(out); ok {
			return decoded, true, nil
		}
		return out, true, nil
	}
}

// decodeAnswer lets users type JSON literals for arrays, mappings, and
// numbers. Plain strings pass through as typed above.
func decodeAnswer(raw string) (any, bool) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false
	}
	return value, true
}

func helpFor(entry schema.Entry) string {
	var parts []string
	if entry.Required {
		parts = append(parts, "required")
	}
	if entry.Min != nil {
		parts = append(parts, fmt.Sprintf("min %v", *entry.Min))
	}
	if entry.Max != nil {
		parts = append(parts, fmt.Sprintf("max %v", *entry.Max))
	}
	if entry.Default != nil {
		parts = append(parts, fmt.Sprintf("default %v", entry.Default))
	}
	return strings.Join(parts, ", ")
}

// merged rewrites coerced values into JSON-friendly shapes.
func merged(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case model.EnumMember:
			out[key] = v.Name
		case model.LayerMask:
			out[key] = uint32(v)
		default:
			out[key] = value
		}
	}
	return out
}
