package genai

import gemini "google.golang.org/genai"

// Schema is the provider's response schema type.
type Schema = gemini.Schema

const (
	TypeObject  = gemini.TypeObject
	TypeString  = gemini.TypeString
	TypeNumber  = gemini.TypeNumber
	TypeInteger = gemini.TypeInteger
	TypeBoolean = gemini.TypeBoolean
	TypeArray   = gemini.TypeArray
)

func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

func StringArray(description string) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: &Schema{Type: TypeString}}
}

// Field is one named property of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Optional bool
}

// Object builds an object schema. Fields are required unless marked optional
// and keep the order they are given in.
func Object(description string, fields ...Field) *Schema {
	s := &Schema{
		Type:        TypeObject,
		Description: description,
		Properties:  make(map[string]*Schema, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.Name] = f.Schema
		s.PropertyOrdering = append(s.PropertyOrdering, f.Name)
		if !f.Optional {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}
