package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ENARE Prep API",
        "description": "Personal study tracker for residency exam preparation",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Subjects", "description": "Built-in and custom subject catalog"},
        {"name": "Studies", "description": "Study session recording and history"},
        {"name": "Dashboard", "description": "Aggregate performance"},
        {"name": "Schedule", "description": "Spaced-repetition review queue"},
        {"name": "Backup", "description": "Full state import/export"},
        {"name": "Exports", "description": "History report downloads"}
    ],
    "paths": {
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List the combined subject catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Add a custom subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate name"}
                }
            }
        },
        "/subjects/{id}": {
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete a custom subject (no-op for built-ins and unknown ids)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted or already absent"}
                }
            }
        },
        "/studies": {
            "get": {
                "tags": ["Studies"],
                "summary": "Browse the study history, newest first",
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "topic", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Studies"],
                "summary": "Record a study session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordStudyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregate performance dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Review queue ranked by urgency",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "Reference date YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backup/export": {
            "get": {
                "tags": ["Backup"],
                "summary": "Download a backup of all sessions and custom subjects",
                "responses": {
                    "200": {"description": "Backup document"}
                }
            }
        },
        "/backup/import": {
            "post": {
                "tags": ["Backup"],
                "summary": "Restore state from a backup file (document or legacy array)",
                "responses": {
                    "200": {"description": "Import summary"},
                    "400": {"description": "Unrecognised backup format"}
                }
            }
        },
        "/exports/history": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the study history as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        }
    },
    "definitions": {
        "AddSubjectRequest": {
            "type": "object",
            "required": ["name", "specialty", "topics"],
            "properties": {
                "name": {"type": "string"},
                "specialty": {"type": "string"},
                "topics": {"type": "string", "description": "Comma-separated topic list"}
            }
        },
        "RecordStudyRequest": {
            "type": "object",
            "required": ["subjectId", "topic", "total", "date"],
            "properties": {
                "subjectId": {"type": "integer"},
                "topic": {"type": "string", "description": "Topic name, or \"outros\" with customTopic set"},
                "customTopic": {"type": "string"},
                "correct": {"type": "integer"},
                "total": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "observations": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
