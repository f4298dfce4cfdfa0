package models

type User struct {
	ID        string `json:"id" dynamodbav:"id" example:"V1StGXR8_Z5jdHi6B-myT"`
	Name      string `json:"name" dynamodbav:"name" example:"Ada Lovelace"`
	Email     string `json:"email" dynamodbav:"email" example:"ada@example.com"`
	ImageURL  string `json:"imageUrl" dynamodbav:"imageUrl"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt" example:"2024-05-01T12:00:00.000Z"`
}
