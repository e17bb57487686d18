package models

// FieldKind is the primitive type a schema field must carry.
type FieldKind string

const (
	KindString FieldKind = "string"
	KindNumber FieldKind = "number"
)

// SchemaField names one required field of a stage's output schema.
type SchemaField struct {
	Name string
	Kind FieldKind
}

// Schema is the set of required fields a model reply must satisfy before
// it is accepted as structured output. Extra fields are ignored.
type Schema []SchemaField

// AgentConfig is the fixed instruction/schema pairing handed to the model
// collaborator for one pipeline stage.
type AgentConfig struct {
	Name         string
	Instructions string
	Output       Schema
}
