package dto

import "io"

// FileInput - загруженный файл, отвязанный от multipart.
type FileInput struct {
	Filename string
	Size     int64
	Content  io.Reader
}
