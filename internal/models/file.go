package models

const DefaultFileType = "application/octet-stream"

type File struct {
	ID         string `json:"id" dynamodbav:"id" example:"V1StGXR8_Z5jdHi6B-myT"`
	Name       string `json:"name" dynamodbav:"name" example:"report.pdf"`
	Size       int64  `json:"size" dynamodbav:"size" example:"2048"`
	Type       string `json:"type" dynamodbav:"type" example:"application/pdf"`
	UploadedAt string `json:"uploadedAt" dynamodbav:"uploadedAt" example:"2024-05-01T12:00:00.000Z"`
}
