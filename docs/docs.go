// Package docs registers the Swagger spec served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "security": [{"AppID": [], "AppKey": []}],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "Logged out", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/zones/{zoneId}": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["zones"],
                "summary": "Get zone assignments",
                "parameters": [{"type": "integer", "name": "zoneId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/zones/{zoneId}/areas": {
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["zones"],
                "summary": "Create area and assign students",
                "parameters": [
                    {"type": "integer", "name": "zoneId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAreaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "403": {"description": "Not the zone leader", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Supervisor belongs to another zone", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/zones/{zoneId}/balance": {
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["zones"],
                "summary": "Balance zone workload",
                "parameters": [{"type": "integer", "name": "zoneId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "422": {"description": "Zone has no supervisors", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/workload": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "My workload",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/supervisors/me/students": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "My students",
                "parameters": [{"type": "string", "name": "status", "in": "query", "description": "Supervision status filter: 0, 50 or 100, optionally with %"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Unknown status filter", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "No students assigned or none match the filter", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/students/search": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "Search my students",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true, "description": "Matches name, email or registration number"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Empty query", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "No students assigned", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/profile": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "My profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "Update my profile",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Nothing to update", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "Delete my supervisor account and release my students",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/supervisors/me/visits": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "My visits",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "Plan a visit",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateVisitRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "403": {"description": "Student not assigned to me", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Student has no active internship", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/visits/{visitId}": {
            "put": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "Update a visit",
                "parameters": [
                    {"type": "integer", "name": "visitId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateVisitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Visit not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Completed visits cannot be reopened", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "Delete a visit",
                "parameters": [{"type": "integer", "name": "visitId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Visit not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/visits/{visitId}/status": {
            "put": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "Set visit status",
                "parameters": [
                    {"type": "integer", "name": "visitId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.VisitStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "409": {"description": "Completed visits cannot be reopened", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/evaluations": {
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["visits"],
                "summary": "Record an evaluation",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateEvaluationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid score or type", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/supervisors/me/dashboard": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "My dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/supervisors/{supervisorId}/workload": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["supervisors"],
                "summary": "Supervisor workload",
                "parameters": [{"type": "integer", "name": "supervisorId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/students/{studentId}/presence": {
            "get": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["presence"],
                "summary": "Verify student presence",
                "parameters": [{"type": "integer", "name": "studentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/students/me/location": {
            "put": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["presence"],
                "summary": "Report my location",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateLocationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/presence/check": {
            "post": {
                "security": [{"BearerAuth": [], "AppID": [], "AppKey": []}],
                "tags": ["presence"],
                "summary": "Check coordinates",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PresenceCheckRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "AUTH_001"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "severity": {"type": "string"},
                "details": {}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "supervisor@school.edu"},
                "password": {"type": "string", "example": "password123"}
            }
        },
        "dto.CreateAreaRequest": {
            "type": "object",
            "required": ["name", "supervisorId"],
            "properties": {
                "name": {"type": "string", "example": "Tema North"},
                "description": {"type": "string"},
                "supervisorId": {"type": "integer", "example": 3}
            }
        },
        "dto.UpdateLocationRequest": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number", "example": 5.6037},
                "longitude": {"type": "number", "example": -0.187}
            }
        },
        "dto.PresenceCheckRequest": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/geo.Coordinate"},
                "company": {"$ref": "#/definitions/geo.Coordinate"},
                "maxMeters": {"type": "number", "example": 200}
            }
        },
        "dto.StudentSummary": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer", "example": 12},
                "registrationNumber": {"type": "string", "example": "IT-2024-0042"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "areaId": {"type": "integer"}
            }
        },
        "dto.SupervisorProfile": {
            "type": "object",
            "properties": {
                "supervisorId": {"type": "integer", "example": 3},
                "userId": {"type": "integer"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "position": {"type": "string", "example": "Senior Lecturer"},
                "zoneId": {"type": "integer"},
                "areaId": {"type": "integer"},
                "studentCount": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "position": {"type": "string"}
            }
        },
        "dto.CreateVisitRequest": {
            "type": "object",
            "required": ["studentId", "visitDate"],
            "properties": {
                "studentId": {"type": "integer", "example": 12},
                "visitDate": {"type": "string", "example": "2026-05-14T00:00:00Z"}
            }
        },
        "dto.UpdateVisitRequest": {
            "type": "object",
            "properties": {
                "visitDate": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "Completed"]}
            }
        },
        "dto.VisitStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Completed"]}
            }
        },
        "dto.CreateEvaluationRequest": {
            "type": "object",
            "required": ["studentId", "evaluationType"],
            "properties": {
                "studentId": {"type": "integer", "example": 12},
                "evaluationType": {"type": "string", "example": "Final"},
                "totalScore": {"type": "number", "example": 78.5}
            }
        },
        "models.VisitLocation": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "supervisorId": {"type": "integer"},
                "studentId": {"type": "integer"},
                "internshipId": {"type": "integer"},
                "companyId": {"type": "integer"},
                "visitDate": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "Completed"]}
            }
        },
        "models.Evaluation": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "supervisorId": {"type": "integer"},
                "applicationId": {"type": "integer"},
                "evaluationType": {"type": "string"},
                "totalScore": {"type": "number"},
                "evaluationDate": {"type": "string"}
            }
        },
        "geo.Coordinate": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "AppID": {"type": "apiKey", "name": "X-App-ID", "in": "header"},
        "AppKey": {"type": "apiKey", "name": "X-App-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Internship Supervision API",
	Description:      "Zone assignment, supervisor workload and presence verification for internship supervision",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
