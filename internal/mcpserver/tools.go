package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/tabtools/parse"
	"github.com/erraggy/tabtools/projection"
	"github.com/erraggy/tabtools/ptr"
)

type resolveInput struct {
	Schema      string            `json:"schema,omitempty"      jsonschema:"The JSON Schema document as YAML or JSON text; omit for no type constraints"`
	Projections map[string]string `json:"projections,omitempty" jsonschema:"Field name to document pointer overrides"`
}

type resolveEntry struct {
	Field         string   `json:"field"`
	Pointer       string   `json:"pointer"`
	MustExist     bool     `json:"must_exist"`
	PossibleTypes []string `json:"possible_types,omitempty"`
}

type resolveOutput struct {
	Entries  []resolveEntry `json:"entries"`
	Warnings []string       `json:"warnings,omitempty"`
}

// warnCollector accumulates warning messages for the tool response.
type warnCollector struct {
	projection.NopLogger
	warnings *[]string
}

func (w warnCollector) Warn(msg string, attrs ...any) {
	for i := 0; i+1 < len(attrs); i += 2 {
		if key, ok := attrs[i].(string); ok {
			if val, ok := attrs[i+1].(string); ok {
				msg += " " + key + "=" + val
			}
		}
	}
	*w.warnings = append(*w.warnings, msg)
}

func (w warnCollector) With(_ ...any) projection.Logger { return w }

func handleResolveProjections(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	cfg := &parse.Config{Projections: input.Projections}
	if input.Schema != "" {
		var doc any
		if err := yaml.Unmarshal([]byte(input.Schema), &doc); err != nil {
			return errResult(err), resolveOutput{}, nil
		}
		cfg.Schema = doc
	}

	var warnings []string
	table, err := cfg.ResolveProjections(projection.WithLogger(warnCollector{warnings: &warnings}))
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	output := resolveOutput{
		Entries:  make([]resolveEntry, 0, len(table)),
		Warnings: warnings,
	}
	for _, field := range table.Fields() {
		info, _ := table.Lookup(field)
		entry := resolveEntry{
			Field:     field,
			Pointer:   info.TargetLocation.String(),
			MustExist: info.MustExist,
		}
		if info.PossibleTypes != nil {
			entry.PossibleTypes = info.PossibleTypes.Names()
		}
		output.Entries = append(output.Entries, entry)
	}
	return nil, output, nil
}

type deriveInput struct {
	Pointer string `json:"pointer" jsonschema:"The slash-delimited document pointer to derive candidate field names for"`
}

type deriveOutput struct {
	Fields []string `json:"fields"`
}

func handleDeriveFields(_ context.Context, _ *mcp.CallToolRequest, input deriveInput) (*mcp.CallToolResult, deriveOutput, error) {
	return nil, deriveOutput{
		Fields: projection.DeriveFieldNames(ptr.Parse(input.Pointer)),
	}, nil
}
