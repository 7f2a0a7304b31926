package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Skynet EPR API",
        "description": "Performance evaluation records for students and instructors.",
        "version": "1.0.0"
    },
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "People",
            "description": "Students, instructors and admins"
        },
        {
            "name": "EPR",
            "description": "Periodic performance evaluations"
        },
        {
            "name": "System",
            "description": "Probes and index"
        }
    ],
    "paths": {
        "/": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "API index",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/people": {
            "get": {
                "tags": [
                    "People"
                ],
                "summary": "List people",
                "parameters": [
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "student",
                            "instructor",
                            "admin"
                        ]
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "description": "Case-insensitive match on name or email"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/PersonListItem"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid role",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/people/{id}": {
            "get": {
                "tags": [
                    "People"
                ],
                "summary": "Get person",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Person ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/Person"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Person not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/epr": {
            "get": {
                "tags": [
                    "EPR"
                ],
                "summary": "List evaluations for a person",
                "parameters": [
                    {
                        "name": "personId",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/EPRDetail"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "personId missing",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "EPR"
                ],
                "summary": "Create evaluation",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateEPRRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/EPRRecord"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "INVALID_RATING, INVALID_PERIOD or validation failure",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Person or evaluator not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/epr/export": {
            "get": {
                "tags": [
                    "EPR"
                ],
                "summary": "Download a person's evaluation history",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "personId",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ],
                        "default": "csv"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Person not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/epr/assist": {
            "post": {
                "tags": [
                    "EPR"
                ],
                "summary": "Suggest remarks from ratings",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AssistRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/AssistResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "INVALID_RATING",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/epr/{id}": {
            "get": {
                "tags": [
                    "EPR"
                ],
                "summary": "Get evaluation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "EPR ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/EPRDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "EPR not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "EPR"
                ],
                "summary": "Update evaluation",
                "description": "Only ratings, remarks and status can change; omitted fields keep their value.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "EPR ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateEPRRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/EPRRecord"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid rating or status",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "EPR not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Person": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "student",
                        "instructor",
                        "admin"
                    ]
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "PersonListItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "course_name": {
                    "type": "string"
                },
                "enrollment_status": {
                    "type": "string",
                    "enum": [
                        "active",
                        "completed",
                        "dropped"
                    ]
                },
                "total_eprs_written": {
                    "type": "integer"
                }
            }
        },
        "EPRRecord": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "format": "uuid"
                },
                "person_id": {
                    "type": "string"
                },
                "evaluator_id": {
                    "type": "string"
                },
                "role_type": {
                    "type": "string",
                    "enum": [
                        "student",
                        "instructor"
                    ]
                },
                "period_start": {
                    "type": "string",
                    "format": "date-time"
                },
                "period_end": {
                    "type": "string",
                    "format": "date-time"
                },
                "overall_rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "technical_skills_rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "non_technical_skills_rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "remarks": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "draft",
                        "submitted",
                        "archived"
                    ]
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "EPRDetail": {
            "allOf": [
                {
                    "$ref": "#/definitions/EPRRecord"
                },
                {
                    "type": "object",
                    "properties": {
                        "person_name": {
                            "type": "string"
                        },
                        "person_role": {
                            "type": "string"
                        },
                        "evaluator_name": {
                            "type": "string"
                        }
                    }
                }
            ]
        },
        "CreateEPRRequest": {
            "type": "object",
            "required": [
                "personId",
                "evaluatorId",
                "roleType",
                "periodStart",
                "periodEnd",
                "overallRating",
                "technicalSkillsRating",
                "nonTechnicalSkillsRating"
            ],
            "properties": {
                "personId": {
                    "type": "string"
                },
                "evaluatorId": {
                    "type": "string"
                },
                "roleType": {
                    "type": "string",
                    "enum": [
                        "student",
                        "instructor"
                    ]
                },
                "periodStart": {
                    "type": "string",
                    "format": "date"
                },
                "periodEnd": {
                    "type": "string",
                    "format": "date"
                },
                "overallRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "technicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "nonTechnicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "remarks": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "draft",
                        "submitted",
                        "archived"
                    ]
                }
            }
        },
        "UpdateEPRRequest": {
            "type": "object",
            "properties": {
                "overallRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "technicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "nonTechnicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "remarks": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "draft",
                        "submitted",
                        "archived"
                    ]
                }
            }
        },
        "AssistRequest": {
            "type": "object",
            "required": [
                "overallRating",
                "technicalSkillsRating",
                "nonTechnicalSkillsRating"
            ],
            "properties": {
                "overallRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "technicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "nonTechnicalSkillsRating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                }
            }
        },
        "AssistResponse": {
            "type": "object",
            "properties": {
                "suggestedRemarks": {
                    "type": "string"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

// SwaggerInfo holds the values templated into docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Skynet EPR API",
	Description:      "Performance evaluation records for students and instructors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
