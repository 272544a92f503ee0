package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SICA API",
        "description": "Lab room scheduling, advisor availability and attendance service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Advisors", "description": "Advisor roster management"},
        {"name": "Shifts", "description": "Advisor shift grid"},
        {"name": "Course Schedules", "description": "Per-term course grid"},
        {"name": "Availability", "description": "Who is on shift, with live presence"},
        {"name": "Attendance", "description": "Check-in/check-out log"}
    ],
    "paths": {
        "/advisors": {
            "get": {
                "tags": ["Advisors"],
                "summary": "List advisors",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Advisors"],
                "summary": "Register advisor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAdvisorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Account already used"}
                }
            }
        },
        "/advisors/{id}": {
            "get": {
                "tags": ["Advisors"],
                "summary": "Get advisor detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Advisors"],
                "summary": "Update advisor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAdvisorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Advisors"],
                "summary": "Deactivate advisor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/advisors/{id}/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List one advisor's shift cells",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List shift cells",
                "parameters": [
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "advisor_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Shifts"],
                "summary": "Place a shift block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShiftBlockRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A requested cell is occupied"}
                }
            }
        },
        "/shifts/{id}": {
            "delete": {
                "tags": ["Shifts"],
                "summary": "Remove a whole shift block by one of its cells",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Cell not found"}
                }
            }
        },
        "/course-schedules": {
            "get": {
                "tags": ["Course Schedules"],
                "summary": "List course blocks",
                "parameters": [
                    {"name": "term_id", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Course Schedules"],
                "summary": "Place a course block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseBlockRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A spanned cell is occupied"}
                }
            }
        },
        "/course-schedules/{id}": {
            "delete": {
                "tags": ["Course Schedules"],
                "summary": "Delete a course block",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/rooms/{room}/shifts/week": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Merged week view of a room's advisor grid",
                "parameters": [
                    {"name": "room", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{room}/course-schedules/week": {
            "get": {
                "tags": ["Course Schedules"],
                "summary": "Merged week view of a room's course grid",
                "parameters": [
                    {"name": "room", "in": "path", "required": true, "type": "string"},
                    {"name": "term_id", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{room}/course-schedules": {
            "delete": {
                "tags": ["Course Schedules"],
                "summary": "Clear a room's course grid for a term",
                "parameters": [
                    {"name": "room", "in": "path", "required": true, "type": "string"},
                    {"name": "term_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{room}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Advisors available in a room",
                "parameters": [
                    {"name": "room", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "query", "required": true, "type": "string"},
                    {"name": "slot", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid slot or range"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance history for an account",
                "parameters": [
                    {"name": "account_id", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/check-in": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a check-in for the authenticated account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already checked in"}
                }
            }
        },
        "/attendance/check-out": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a check-out for the authenticated account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No open check-in"}
                }
            }
        }
    },
    "definitions": {
        "CreateAdvisorRequest": {
            "type": "object",
            "properties": {
                "account_id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "career": {"type": "string"},
                "phone": {"type": "string"}
            },
            "required": ["account_id", "email", "full_name"]
        },
        "UpdateAdvisorRequest": {
            "type": "object",
            "properties": {
                "account_id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "career": {"type": "string"},
                "phone": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["account_id", "email", "full_name"]
        },
        "CreateShiftBlockRequest": {
            "type": "object",
            "properties": {
                "advisor_id": {"type": "string"},
                "room": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "slots": {"type": "array", "items": {"type": "string"}},
                "metadata": {"type": "object"}
            },
            "required": ["advisor_id", "room", "days", "slots"]
        },
        "CreateCourseBlockRequest": {
            "type": "object",
            "properties": {
                "term_id": {"type": "string"},
                "course": {"type": "string"},
                "room": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "metadata": {"type": "object"}
            },
            "required": ["course", "room", "days", "start_time", "end_time"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
