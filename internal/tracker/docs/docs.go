// Package docs holds the swagger document of the tracker api, served
// under /docs
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
    "securityDefinitions": {
        "bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Exchanges a username and password for a bearer session token",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "must be 'password' when set", "name": "grant_type", "in": "formData"},
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginV1Output"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/HttpResponse"}}
                }
            }
        },
        "/class/qrcode": {
            "post": {
                "security": [{"bearer": []}],
                "description": "Issues a signed check-in challenge for the calling student, replacing any earlier one for the same class session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["class"],
                "summary": "Create a check-in challenge",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateChallengeV1Input"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ChallengePayload"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "403": {"description": "Not enrolled or wrong class password", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "404": {"description": "Class session not found", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "409": {"description": "Class session is not taking place", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/HttpResponse"}}
                }
            }
        },
        "/class/checkin": {
            "post": {
                "security": [{"bearer": []}],
                "description": "Redeems a scanned challenge and records the student as present",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["class"],
                "summary": "Check a student in",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChallengePayload"}}
                ],
                "responses": {
                    "200": {"description": "Recorded or already marked", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/CheckinResult"}}}]}},
                    "400": {"description": "Malformed or forged challenge", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "403": {"description": "Not the class teacher or student not enrolled", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "404": {"description": "Class session not found", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "409": {"description": "Class session is not taking place or challenge was superseded", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "410": {"description": "Challenge has expired", "schema": {"$ref": "#/definitions/HttpResponse"}}
                }
            }
        },
        "/class/{classSessionId}/password": {
            "get": {
                "security": [{"bearer": []}],
                "description": "Returns the rotating password of a class session the caller teaches",
                "produces": ["application/json"],
                "tags": ["class"],
                "summary": "Get the class password",
                "parameters": [
                    {"type": "integer", "name": "classSessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/ClassPassword"}}}]}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HttpResponse"}},
                    "409": {"description": "Class session is not taking place", "schema": {"$ref": "#/definitions/HttpResponse"}}
                }
            }
        },
        "/student/today": {
            "get": {
                "security": [{"bearer": []}],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "List the calling student's class sessions for today",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/StudentToday"}}}]}}
                }
            }
        },
        "/teacher/today": {
            "get": {
                "security": [{"bearer": []}],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "List the calling teacher's class sessions for today",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/TeacherToday"}}}]}}
                }
            }
        },
        "/uc/list": {
            "get": {
                "security": [{"bearer": []}],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "List course units",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/HttpResponse"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/CourseUnit"}}}}]}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "HttpResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "LoginV1Output": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "CreateChallengeV1Input": {
            "type": "object",
            "properties": {
                "id_aula": {"type": "integer"},
                "password": {"type": "string"}
            }
        },
        "ChallengePayload": {
            "type": "object",
            "properties": {
                "id_aula": {"type": "integer"},
                "id_aluno": {"type": "integer"},
                "iat": {"type": "integer"},
                "exp": {"type": "integer"},
                "token": {"type": "string"}
            }
        },
        "CheckinResult": {
            "type": "object",
            "properties": {
                "id_aula": {"type": "integer"},
                "id_aluno": {"type": "integer"},
                "recorded": {"type": "boolean"},
                "alreadyMarked": {"type": "boolean"}
            }
        },
        "ClassPassword": {
            "type": "object",
            "properties": {
                "id_aula": {"type": "integer"},
                "password": {"type": "string"},
                "validUntil": {"type": "string", "format": "date-time"}
            }
        },
        "ClassSession": {
            "type": "object",
            "properties": {
                "id_aula": {"type": "integer"},
                "id_uc": {"type": "integer"},
                "nome_uc": {"type": "string"},
                "nome_curso": {"type": "string"},
                "sala": {"type": "string"},
                "resumo": {"type": "string"},
                "inicio": {"type": "string", "format": "date-time"},
                "fim": {"type": "string", "format": "date-time"},
                "presencas": {"type": "integer"},
                "marcada": {"type": "boolean"}
            }
        },
        "StudentToday": {
            "type": "object",
            "properties": {
                "id_aluno": {"type": "integer"},
                "aulas": {"type": "array", "items": {"$ref": "#/definitions/ClassSession"}}
            }
        },
        "TeacherToday": {
            "type": "object",
            "properties": {
                "id_docente": {"type": "integer"},
                "aulas": {"type": "array", "items": {"$ref": "#/definitions/ClassSession"}}
            }
        },
        "CourseUnit": {
            "type": "object",
            "properties": {
                "id_uc": {"type": "integer"},
                "nome_uc": {"type": "string"},
                "descricao": {"type": "string"},
                "nome_curso": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo is registered with swag so http-swagger can serve it as
// doc.json
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "rollcall tracker api",
	Description:      "Presence tracking for class sessions using signed, single-use QR challenges.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
