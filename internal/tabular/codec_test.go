package tabular

import (
	"strings"
	"testing"

	"gradtrack/projects/internal/model"
)

func fptr(v float64) *float64 { return &v }

func strptr(s string) *string { return &s }

func TestEncodeQuotesAndNils(t *testing.T) {
	rows := TeacherRows([]model.Teacher{
		{ID: "t-1", Name: "Smith, John", Email: "john.s@u.edu", NationalID: "123"},
	})
	text := Encode(rows)

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one record, got %d lines", len(lines))
	}
	if lines[0] != "id,name,email,nationalId" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Smith, John"`) {
		t.Fatalf("comma value not quoted: %q", lines[1])
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Fatalf("Encode(nil) = %q", got)
	}
}

func TestDecodeCoercesTokens(t *testing.T) {
	text := "id,flag,nothing\nr-1,true,null\nr-2,false,keep"
	rows := Decode(text)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Values["flag"] != true {
		t.Fatalf("true token = %v", rows[0].Values["flag"])
	}
	if rows[0].Values["nothing"] != nil {
		t.Fatalf("null token = %v", rows[0].Values["nothing"])
	}
	if rows[1].Values["flag"] != false {
		t.Fatalf("false token = %v", rows[1].Values["flag"])
	}
	if rows[1].Values["nothing"] != "keep" {
		t.Fatalf("plain token = %v", rows[1].Values["nothing"])
	}
}

func TestDecodeDropsMismatchedRows(t *testing.T) {
	text := "id,name\nr-1,Alpha\nr-2\nr-3,Beta,extra\nr-4,Gamma"
	rows := Decode(text)
	if len(rows) != 2 {
		t.Fatalf("expected short and long rows dropped, got %d rows", len(rows))
	}
	if rows[0].Values["id"] != "r-1" || rows[1].Values["id"] != "r-4" {
		t.Fatalf("wrong survivors: %v %v", rows[0].Values["id"], rows[1].Values["id"])
	}
}

func TestDecodeEmptyAndHeaderOnly(t *testing.T) {
	if rows := Decode(""); rows != nil {
		t.Fatalf("empty input produced %v", rows)
	}
	if rows := Decode("id,name"); len(rows) != 0 {
		t.Fatalf("header-only input produced %d rows", len(rows))
	}
}

func TestProjectRoundTrip(t *testing.T) {
	in := []model.Project{
		{
			ID:               "p-1",
			Title:            "Robotics, Applied",
			PresentationDate: "2026-11-30",
			FilesURL:         "https://example.com/p1",
			StatusID:         "status-2",
			FormatID:         "format-1",
			DirectorApproved: true,
			WrittenGrade1:    fptr(4.5),
			WrittenGrade2:    nil,
		},
		{ID: "p-2", Title: "Plain", StatusID: "status-1", FormatID: "format-1"},
	}

	out := ProjectsFromRows(Decode(Encode(ProjectRows(in))))
	if len(out) != 2 {
		t.Fatalf("round trip lost rows: %d", len(out))
	}
	got := out[0]
	if got.Title != "Robotics, Applied" {
		t.Fatalf("title = %q", got.Title)
	}
	if !got.DirectorApproved {
		t.Fatalf("approval flag lost")
	}
	if got.WrittenGrade1 == nil || *got.WrittenGrade1 != 4.5 {
		t.Fatalf("grade lost: %v", got.WrittenGrade1)
	}
	if got.WrittenGrade2 != nil {
		t.Fatalf("absent grade materialized: %v", *got.WrittenGrade2)
	}
	if out[1].DirectorApproved {
		t.Fatalf("approval flag invented on second row")
	}
}

func TestStudentRoundTripOptionalProject(t *testing.T) {
	in := []model.Student{
		{ID: "s-1", Name: "A", Email: "a@u.edu", NationalID: "1", ProgramID: "program-1", ProjectID: strptr("p-1")},
		{ID: "s-2", Name: "B", Email: "b@u.edu", NationalID: "2", ProgramID: "program-1", ProjectID: nil},
	}
	out := StudentsFromRows(Decode(Encode(StudentRows(in))))
	if out[0].ProjectID == nil || *out[0].ProjectID != "p-1" {
		t.Fatalf("project link lost: %v", out[0].ProjectID)
	}
	if out[1].ProjectID != nil {
		t.Fatalf("absent project link materialized: %v", *out[1].ProjectID)
	}
}
