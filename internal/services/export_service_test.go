package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories/document"
	"github.com/skillup-edu/school-service/internal/store"
)

func TestExportClassGrades(t *testing.T) {
	memStore := store.NewMemoryStore()
	repos := document.NewManager(memStore)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	export := NewExportService(repos, logger)
	ctx := context.Background()

	studentID, err := repos.Users().Create(ctx, &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	})
	require.NoError(t, err)

	classID, err := repos.Classes().Create(ctx, &models.Class{
		Name:      "Beginner A",
		ClassCode: "BEG-A",
		LevelID:   "level-1",
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = repos.Records().Create(ctx, &models.StudentRecord{
		StudentID:     studentID,
		ClassID:       classID,
		Attendance:    95,
		Participation: 80,
		Homework:      88,
		Exam:          91,
		FinalGrade:    89.5,
		Semester:      "spring",
		Year:          2026,
	})
	require.NoError(t, err)

	content, err := export.ExportClassGrades(ctx, classID)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Grades", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Student", header)

	name, err := f.GetCellValue("Grades", "A2")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	email, err := f.GetCellValue("Grades", "B2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	final, err := f.GetCellValue("Grades", "I2")
	require.NoError(t, err)
	assert.Equal(t, "89.5", final)
}

func TestExportClassGradesUnknownClass(t *testing.T) {
	memStore := store.NewMemoryStore()
	repos := document.NewManager(memStore)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	export := NewExportService(repos, logger)

	_, err := export.ExportClassGrades(context.Background(), "no-such-class")
	assert.ErrorIs(t, err, ErrClassNotFound)
}
