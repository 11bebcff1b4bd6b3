package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkInput runs struct tag validation and converts failures into a tool
// error result. A nil result means the input is valid.
func checkInput(in any) *mcp.CallToolResult {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return toolError("Invalid input: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return toolError("Invalid input: %s", strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	// "url|len=0" reports the whole alternation as its tag.
	tag, _, _ := strings.Cut(e.Tag(), "|")
	switch tag {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #ff6b2c", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// saved renders the result of a mutation. The change always stands in
// memory; a failed write is reported as a second content block.
func saved(store *catalog.Store, result *mcp.CallToolResult) *mcp.CallToolResult {
	if err := store.PersistError(); err != nil {
		result.Content = append(result.Content, &mcp.TextContent{
			Text: fmt.Sprintf("Warning: change applied but not saved: %v", err),
		})
	}
	return result
}

func savedJSON(store *catalog.Store, v any) (*mcp.CallToolResult, any, error) {
	res, _, err := toolJSON(v)
	if res.IsError {
		return res, nil, err
	}
	return saved(store, res), nil, err
}
