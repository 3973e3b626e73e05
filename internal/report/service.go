package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"healthflow/internal/triage"
)

type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Service renders triage summaries as PDF documents and escalates emergency
// cases to the on-call chat.
type Service struct {
	tgClient     TelegramClient
	onCallChatID int64
	logger       *slog.Logger
}

func NewService(tg TelegramClient, onCallChatID int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tgClient:     tg,
		onCallChatID: onCallChatID,
		logger:       logger,
	}
}

// SendOnCallAlert notifies the on-call chat about an emergency classification
// and attaches the full PDF summary.
func (s *Service) SendOnCallAlert(ctx context.Context, audit *triage.Audit) error {
	if s.tgClient == nil {
		return fmt.Errorf("telegram client is not configured")
	}

	text := fmt.Sprintf("🚨 EMERGENCY triage case %s\nSymptoms: %s\nScore: %d\nAction: %s",
		audit.ID, audit.Symptoms, audit.Score, audit.SuggestedAction)
	if err := s.tgClient.SendMessage(s.onCallChatID, text); err != nil {
		return fmt.Errorf("failed to send on-call message: %w", err)
	}

	pdf, err := s.RenderPDF(audit)
	if err != nil {
		return fmt.Errorf("failed to render alert report: %w", err)
	}

	fileName := fmt.Sprintf("triage_%s.pdf", audit.ID)
	if err := s.tgClient.SendDocument(s.onCallChatID, pdf, fileName); err != nil {
		return fmt.Errorf("failed to send alert report: %w", err)
	}

	s.logger.Info("on-call alert sent", "audit_id", audit.ID)
	return nil
}

// RenderPDF builds the printable summary of one triage interaction.
func (s *Service) RenderPDF(audit *triage.Audit) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF. Please ensure ttf-dejavu is installed. Last error: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Symptom Triage Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", audit.ReceivedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Case ID: %s", audit.ID))
	pdf.Br(15)
	if audit.Age != nil {
		pdf.Cell(nil, fmt.Sprintf("Age: %d", *audit.Age))
		pdf.Br(15)
	}
	if len(audit.KnownConditions) > 0 {
		pdf.Cell(nil, fmt.Sprintf("Known conditions: %s", strings.Join(audit.KnownConditions, ", ")))
		pdf.Br(15)
	}
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Reported symptoms:")
	pdf.Br(15)
	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	writeWrapped(&pdf, audit.Symptoms)
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Assessment: %s (score %d/100)", audit.RecommendedLevel, audit.Score))
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	if len(audit.Reasons) == 0 {
		pdf.Cell(nil, "- No specific findings recorded.")
		pdf.Br(12)
	}
	for _, reason := range audit.Reasons {
		writeWrapped(&pdf, "- "+reason)
		pdf.Br(3)
	}
	pdf.Br(12)

	if audit.SuggestedAction != "" {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Suggested action:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		writeWrapped(&pdf, audit.SuggestedAction)
	}

	pdf.SetY(270)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated %s. Not a medical diagnosis.", time.Now().Format("02.01.2006 15:04")))

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWrapped(pdf *gopdf.GoPdf, text string) {
	lines, _ := pdf.SplitText(text, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
}
