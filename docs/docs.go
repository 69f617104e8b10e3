package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ai/random": {
            "post": {
                "description": "Picks a single book for a category, genre and reading age, with its cover.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Suggest one random book",
                "parameters": [
                    {
                        "description": "Constraints for the pick",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/book.RandomQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.BookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/ai/reading-log/summary": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Summarize a reading log",
                "parameters": [
                    {
                        "description": "Reading log",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/book.ReadingLogQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/ai/suggestions": {
            "post": {
                "description": "Asks the text model for books matching a free-text description and attaches a cover to each.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Suggest books from a description",
                "parameters": [
                    {
                        "description": "What the reader is looking for",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/book.SuggestionQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.BooksResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/books/search": {
            "get": {
                "description": "Passes the query straight to Google Books.",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Keyword search",
                "parameters": [
                    {"type": "string", "description": "Search terms", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.BooksResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/covers": {
            "get": {
                "description": "Always answers with a usable URL; the placeholder when nothing is found.",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Resolve a cover image",
                "parameters": [
                    {"type": "string", "description": "Book title", "name": "title", "in": "query", "required": true},
                    {"type": "string", "description": "Book author", "name": "author", "in": "query"},
                    {"type": "string", "description": "Short description (generative strategy only)", "name": "description", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.CoverResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "book.Book": {
            "type": "object",
            "properties": {
                "aiHint": {"type": "string"},
                "ageRange": {"type": "string"},
                "author": {"type": "string"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "coverImage": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "isbn": {"type": "string"},
                "source": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "book.RandomQuery": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "genre": {"type": "string"},
                "readingAge": {"type": "string"}
            }
        },
        "book.ReadingLogQuery": {
            "type": "object",
            "properties": {
                "bookLog": {"type": "string"}
            }
        },
        "book.SuggestionQuery": {
            "type": "object",
            "properties": {
                "description": {"type": "string"}
            }
        },
        "main.BookResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/book.Book"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "main.BooksResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/book.Book"}},
                "status": {"type": "string", "example": "success"}
            }
        },
        "main.CoverResponse": {
            "type": "object",
            "properties": {
                "coverImage": {"type": "string"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "main.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "detail": {},
                "error": {"type": "string"},
                "status": {"type": "string", "example": "error"},
                "traceId": {"type": "string"}
            }
        },
        "main.SummaryResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "summary": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8899",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Book Finder API",
	Description:      "AI-assisted children's book suggestions with cover art, keyword search and reading-log summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
