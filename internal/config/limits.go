package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100) and keep deep
	// paths displayable.
	MaxFolderNameLength = 100

	// MaxFileNameLength is the maximum length for file names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255), matching what
	// common filesystems allow.
	MaxFileNameLength = 255

	// MaxFileSizeBytes is the upload size cap. Content is stored in a
	// single blob column, so this also bounds row size.
	MaxFileSizeBytes = 50 * 1024 * 1024

	// InvalidNameCharacters are rejected in folder and file names.
	InvalidNameCharacters = `\/:*?"<>|`
)
