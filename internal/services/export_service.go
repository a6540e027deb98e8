package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders grade sheets for download by school staff.
type ExportService interface {
	// ExportClassGrades builds an xlsx workbook with one row per student
	// record in the class.
	ExportClassGrades(ctx context.Context, classID string) ([]byte, error)
}

type exportService struct {
	repos  repositories.Manager
	logger *slog.Logger
}

func NewExportService(repos repositories.Manager, logger *slog.Logger) ExportService {
	return &exportService{repos: repos, logger: logger}
}

func (s *exportService) ExportClassGrades(ctx context.Context, classID string) ([]byte, error) {
	class, err := s.repos.Classes().GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	records, err := s.repos.Records().List(ctx, repositories.RecordFilters{ClassID: &classID})
	if err != nil {
		return nil, fmt.Errorf("failed to list student records: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Grades"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Student", "Email", "Semester", "Year", "Attendance", "Participation", "Homework", "Exam", "Final Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, record := range records {
		name, email := record.StudentID, ""
		student, err := s.repos.Users().GetByID(ctx, record.StudentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load student %s: %w", record.StudentID, err)
		}
		if student != nil {
			name, email = student.Username, student.Email
		}

		values := []any{
			name, email, record.Semester, record.Year,
			record.Attendance, record.Participation, record.Homework, record.Exam,
			record.FinalGrade,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write record row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("exported class grades",
		"class_id", classID,
		"class_code", class.ClassCode,
		"records", len(records))
	return buf.Bytes(), nil
}
