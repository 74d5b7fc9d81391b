package entity

// FileObject describes a document uploaded for later chunking and indexing.
type FileObject struct {
	ID        string `json:"id"`
	Bytes     uint64 `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Object    string `json:"object"`
	Purpose   string `json:"purpose"`
}

// FileObjectType is the constant value of FileObject.Object.
const FileObjectType = "file"

// FilePurposeAssistants marks files uploaded as retrieval context.
const FilePurposeAssistants = "assistants"

// FileData carries the raw content of an uploaded file between layers.
type FileData struct {
	Filename string
	Content  []byte
}
