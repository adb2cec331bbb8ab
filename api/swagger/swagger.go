package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Topic Selection API",
        "description": "Students browse and apply to research topics; teachers curate topics and review applications.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Student",
            "description": "Topic browsing and applications"
        },
        {
            "name": "Teacher",
            "description": "Topic catalogue and application review"
        }
    ],
    "paths": {
        "/student/topics": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "List topics the student may apply to",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/SelectableTopicsResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/teachers": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "List teachers guiding the student's profession",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/SelectableTeachersResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/applications": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "List the student's applications",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ApplicationHistoryResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Student"
                ],
                "summary": "Apply to an existing topic",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ApplyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ApplyResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/applications/export": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "Download the student's application history",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
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
                        "description": "File"
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/proposals": {
            "post": {
                "tags": [
                    "Student"
                ],
                "summary": "Propose a new topic to a teacher and apply to it",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ProposeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ProposeResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/teacher": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "Get the supervisor of the student's approved topic",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/TeacherInfoResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/student/topic": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "Get the student's approved topic with its type",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ApprovedTopicResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/teacher/topics": {
            "get": {
                "tags": [
                    "Teacher"
                ],
                "summary": "List the caller's topics",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/TopicsResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Add a topic to the caller's catalogue",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TopicInfoRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/TopicResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/teacher/applications": {
            "get": {
                "tags": [
                    "Teacher"
                ],
                "summary": "List pending applications to the caller's topics",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ApplicationsResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/teacher/applications/review": {
            "post": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Approve or reject an application",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReviewApplicationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ReviewResult"
                        }
                    },
                    "401": {
                        "description": "No login status",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "403": {
                        "description": "User permission error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Failed",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "Topic": {
            "type": "object",
            "properties": {
                "topicId": {
                    "type": "string"
                },
                "topicName": {
                    "type": "string"
                },
                "introduction": {
                    "type": "string"
                },
                "tid": {
                    "type": "string"
                },
                "typeId": {
                    "type": "string"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "0",
                        "1"
                    ]
                },
                "sid": {
                    "type": "string"
                }
            }
        },
        "TopicType": {
            "type": "object",
            "properties": {
                "typeId": {
                    "type": "string"
                },
                "typeName": {
                    "type": "string"
                }
            }
        },
        "SelectableTopic": {
            "type": "object",
            "properties": {
                "topicId": {
                    "type": "string"
                },
                "topicName": {
                    "type": "string"
                },
                "introduction": {
                    "type": "string"
                },
                "typeId": {
                    "type": "string"
                },
                "typeName": {
                    "type": "string"
                },
                "tid": {
                    "type": "string"
                },
                "teacherName": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "Teacher": {
            "type": "object",
            "properties": {
                "tid": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "guideProfessionId": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "topicDemand": {
                    "type": "string"
                }
            }
        },
        "Application": {
            "type": "object",
            "properties": {
                "sid": {
                    "type": "string"
                },
                "topicId": {
                    "type": "string"
                },
                "applyTime": {
                    "type": "string",
                    "format": "date-time"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "0",
                        "1",
                        "2"
                    ]
                }
            }
        },
        "ApplicationRecord": {
            "type": "object",
            "properties": {
                "topicInfo": {
                    "$ref": "#/definitions/Topic"
                },
                "teacherName": {
                    "type": "string"
                },
                "applyInfo": {
                    "$ref": "#/definitions/Application"
                }
            }
        },
        "TopicInfoRequest": {
            "type": "object",
            "properties": {
                "topicName": {
                    "type": "string"
                },
                "introduction": {
                    "type": "string"
                },
                "typeId": {
                    "type": "string"
                }
            },
            "required": [
                "topicName",
                "typeId"
            ]
        },
        "ApplyRequest": {
            "type": "object",
            "properties": {
                "topicId": {
                    "type": "string"
                }
            },
            "required": [
                "topicId"
            ]
        },
        "ProposeRequest": {
            "type": "object",
            "properties": {
                "tid": {
                    "type": "string"
                },
                "topic": {
                    "$ref": "#/definitions/TopicInfoRequest"
                }
            },
            "required": [
                "tid",
                "topic"
            ]
        },
        "ReviewApplicationRequest": {
            "type": "object",
            "properties": {
                "sid": {
                    "type": "string"
                },
                "topicId": {
                    "type": "string"
                },
                "approve": {
                    "type": "boolean"
                }
            },
            "required": [
                "sid",
                "topicId"
            ]
        },
        "SelectableTopicsResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "topics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/SelectableTopic"
                    }
                }
            }
        },
        "SelectableTeachersResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "teachers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Teacher"
                    }
                }
            }
        },
        "ApplyResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "application": {
                    "$ref": "#/definitions/Application"
                }
            }
        },
        "ProposeResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "topic": {
                    "$ref": "#/definitions/Topic"
                },
                "application": {
                    "$ref": "#/definitions/Application"
                }
            }
        },
        "TeacherInfoResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "userInfo": {
                    "$ref": "#/definitions/Teacher"
                }
            }
        },
        "ApprovedTopicResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "topic": {
                    "$ref": "#/definitions/Topic"
                },
                "type": {
                    "$ref": "#/definitions/TopicType"
                }
            }
        },
        "ApplicationHistoryResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "applyRecord": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ApplicationRecord"
                    }
                }
            }
        },
        "TopicResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "topic": {
                    "$ref": "#/definitions/Topic"
                }
            }
        },
        "TopicsResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "topics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Topic"
                    }
                }
            }
        },
        "ApplicationsResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "applications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Application"
                    }
                }
            }
        },
        "ReviewResult": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "integer"
                },
                "application": {
                    "$ref": "#/definitions/Application"
                }
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
