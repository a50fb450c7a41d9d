package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repos.
const (
	llmEventsTable     = "llm_request_events"
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
)

// eventColumns are carried by every event table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

var (
	llmEventColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmEventsTableDef = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventColumns[4]}},
		},
	}

	sessionEventColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "title", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "boss_name", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "total_stages", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "mistakes", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "completed", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)
	sessionEventsTableDef = &schema.Table{
		Name:       sessionEventsTable,
		Columns:    sessionEventColumns,
		PrimaryKey: []*schema.Column{sessionEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventColumns[3]}},
		},
	}

	answerEventColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "stage_index", Type: field.TypeInt},
		&schema.Column{Name: "stage_id", Type: field.TypeInt},
		&schema.Column{Name: "stage_type", Type: field.TypeString},
		&schema.Column{Name: "option_id", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "mistakes", Type: field.TypeInt},
	)
	answerEventsTableDef = &schema.Table{
		Name:       answerEventsTable,
		Columns:    answerEventColumns,
		PrimaryKey: []*schema.Column{answerEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventColumns[3]}},
		},
	}

	tables = []*schema.Table{llmEventsTableDef, sessionEventsTableDef, answerEventsTableDef}
)
