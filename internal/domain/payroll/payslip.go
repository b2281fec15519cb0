package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePayslipPDF renders a payslip for a processed or paid payroll record
// and returns the file path. Preview records never get payslips.
func (s *Service) GeneratePayslipPDF(ctx context.Context, payrollID, outputDir string) (string, error) {
	record, err := s.Store.FindByID(ctx, payrollID)
	if err != nil {
		return "", err
	}
	if record.Status == StatusPreview {
		return "", ErrNotProcessed
	}

	emp, err := s.Employees.FindByID(ctx, record.EmployeeID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(outputDir, record.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", emp.FullName(), emp.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay period: %s to %s",
		record.PayPeriodStart.Format("2006-01-02"), record.PayPeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %.2f", record.GrossPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax deduction: %.2f", record.TaxDeduction))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Other deductions: %.2f", record.OtherDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %.2f", record.Bonus))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.2f", record.NetPay))
	if record.PaymentDate != nil {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Payment date: %s", record.PaymentDate.Format("2006-01-02")))
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
