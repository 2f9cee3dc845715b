package model

type ViewTemplate struct {
	URL string `json:"url"`
}

type PreviewTemplate struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type TypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceMetadata is the service manifest reconciliation clients read to
// render links to identifiers.
type ServiceMetadata struct {
	Name            string          `json:"name"`
	IdentifierSpace string          `json:"identifierSpace"`
	SchemaSpace     string          `json:"schemaSpace"`
	View            ViewTemplate    `json:"view"`
	Preview         PreviewTemplate `json:"preview"`
	DefaultTypes    []TypeRef       `json:"defaultTypes"`
}
