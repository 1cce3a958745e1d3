package infirmary

import (
	"io"
	"net/url"
)

// FormData is a multipart payload. Passing it to the gateway sends the request as multipart/form-data.
type FormData struct {
	Fields url.Values
	Files  []FormFile
}

type FormFile struct {
	Param       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

func NewFormData() *FormData {
	return &FormData{
		Fields: url.Values{},
	}
}

func (f *FormData) AddField(name, value string) *FormData {
	f.Fields.Add(name, value)
	return f
}

func (f *FormData) AddFile(param, fileName string, reader io.Reader) *FormData {
	f.Files = append(f.Files, FormFile{
		Param:    param,
		FileName: fileName,
		Reader:   reader,
	})
	return f
}
