package tourism

import "time"

// DefaultFileCategory is used when an upload does not name a category
const DefaultFileCategory = "other"

// File is the metadata of an uploaded document. Filename is the opaque
// storage key assigned at upload; OriginalName is what the user sent.
type File struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	Category     string    `json:"category"`
	UploadDate   string    `json:"uploadDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a copy of f; File holds no pointers
func (f File) Clone() File { return f }

// FileInput carries the fields of a new file record
type FileInput struct {
	Filename     string
	OriginalName string
	FileType     string
	FileSize     int64
	Category     string
	UploadDate   string
}

// Build materializes the input into a File, applying the default category
func (in FileInput) Build(id string, createdAt time.Time) File {
	category := in.Category
	if category == "" {
		category = DefaultFileCategory
	}
	return File{
		ID:           id,
		Filename:     in.Filename,
		OriginalName: in.OriginalName,
		FileType:     in.FileType,
		FileSize:     in.FileSize,
		Category:     category,
		UploadDate:   in.UploadDate,
		CreatedAt:    createdAt,
	}
}

// FilePatch is a partial update; nil fields are left untouched
type FilePatch struct {
	Filename     *string
	OriginalName *string
	FileType     *string
	FileSize     *int64
	Category     *string
	UploadDate   *string
}

// Apply merges the patch into f
func (p FilePatch) Apply(f File) File {
	setIfPresent(&f.Filename, p.Filename)
	setIfPresent(&f.OriginalName, p.OriginalName)
	setIfPresent(&f.FileType, p.FileType)
	setIfPresent(&f.FileSize, p.FileSize)
	setIfPresent(&f.Category, p.Category)
	setIfPresent(&f.UploadDate, p.UploadDate)
	return f
}
