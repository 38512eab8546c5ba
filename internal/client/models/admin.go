package models

// KnowledgeDocument is a file indexed into the assistant knowledge base.
type KnowledgeDocument struct {
	SourceFile   string `json:"source_file"`
	ChunksCount  int    `json:"chunks_count"`
	DocumentType string `json:"document_type"`
	Version      int    `json:"version"`
}

type ContractTemplate struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	HTMLContent *string `json:"html_content"`
	IsDefault   bool    `json:"is_default"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	FileName    *string `json:"file_name"`
	FileType    *string `json:"file_type"`
}

// StatusResponse is the generic {"status": "..."} reply.
type StatusResponse struct {
	Status string `json:"status"`
}
