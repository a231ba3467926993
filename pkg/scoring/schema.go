package scoring

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaName = "result.schema.json"

//go:embed result.schema.json
var schemaJSON []byte

// printer formats schema violation messages.
var printer = message.NewPrinter(language.English)

// resultSchema is the compiled schema every parsed response is validated against.
var resultSchema = mustCompileSchema(schemaJSON, schemaName)

func mustCompileSchema(raw []byte, name string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}

	return sch
}

// SchemaJSON returns a copy of the embedded result schema.
func SchemaJSON() []byte {
	return bytes.Clone(schemaJSON)
}

// validate checks a decoded JSON value against the result schema and returns
// one "location: message" entry per leaf failure.
func validate(instance any) []string {
	err := resultSchema.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	var errs []string
	collectSchemaErrors(ve, &errs)

	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(printer)))
		return
	}

	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
