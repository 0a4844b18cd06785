package rewards

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"

	cryptoutil "workpulse/internal/platform/crypto"
)

// GenerateCertificatePDF renders a certificate for a completed achievement
// and returns the file path. When the crypto service is configured the file
// is stored encrypted.
func (s *Service) GenerateCertificatePDF(ctx context.Context, crypto *cryptoutil.Service, dir, tenantID, employeeID, achievementID string) (string, error) {
	var firstName, lastName, name, category string
	var pointValue int
	var unlockedAt time.Time
	err := s.store.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, d.name, d.category, d.point_value, p.unlocked_at
    FROM achievement_progress p
    JOIN achievement_definitions d ON p.achievement_id = d.id
    JOIN employees e ON p.employee_id = e.id
    WHERE p.tenant_id = $1 AND p.employee_id = $2 AND p.achievement_id = $3 AND p.is_completed
  `, tenantID, employeeID, achievementID).Scan(&firstName, &lastName, &name, &category, &pointValue, &unlockedAt)
	if err == pgx.ErrNoRows {
		return "", ErrCertificateMissing
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, employeeID+"-"+achievementID+".pdf")

	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, "Certificate of Achievement", "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Awarded to %s %s", firstName, lastName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Category: %s", category), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Reward: %d points", pointValue), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Unlocked on %s", unlockedAt.Format("2006-01-02")), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if crypto != nil && crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}
