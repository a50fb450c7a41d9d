package scenario

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_Defaults(t *testing.T) {
	msg := buildUserMessage(DefaultConfig())

	if !strings.Contains(msg, "Industry: any (your choice)") {
		t.Error("missing default industry")
	}
	if !strings.Contains(msg, "Number of stages: 3") {
		t.Error("missing stage count")
	}
	if !strings.Contains(msg, "Number of dataset records: 8") {
		t.Error("missing dataset rows")
	}
	want := "1. Observation and Identification\n2. Action and Correction\n3. Validation and Explanation"
	if !strings.HasSuffix(msg, want) {
		t.Errorf("stage order not listed:\n%s", msg)
	}
}

func TestBuildUserMessage_CyclesStageTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Industry = "healthcare"
	cfg.StageCount = 5
	msg := buildUserMessage(cfg)

	if !strings.Contains(msg, "Industry: healthcare") {
		t.Error("missing industry")
	}
	if !strings.Contains(msg, "4. Observation and Identification\n5. Action and Correction") {
		t.Errorf("stage types should repeat:\n%s", msg)
	}
}
