package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

//go:embed templates/certificate.html
var certificateHTML string

var certificateTemplate = template.Must(template.New("certificate").Parse(certificateHTML))

type CertificateStore interface {
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	CertificateExists(ctx context.Context, studentID, quizID uuid.UUID) (bool, error)
	CreateCertificate(ctx context.Context, cert *models.Certificate) error
}

// CertificateService issues a PDF certificate when a student passes a quiz.
type CertificateService struct {
	store       CertificateStore
	passPercent int
	now         func() time.Time

	render func(ctx context.Context, html string) ([]byte, error)
	upload func(ctx context.Context, pdf []byte, studentID uuid.UUID) (string, error)
}

func NewCertificateService(store CertificateStore, cfg *config.Config) *CertificateService {
	s := &CertificateService{
		store:       store,
		passPercent: cfg.CertificatePassPercent,
		now:         time.Now,
		render:      generatePDFFromHTML,
	}
	if cfg.CloudinaryURL == "" {
		log.Println("⚠️ CLOUDINARY_URL not set, certificates will not be issued.")
		return s
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		log.Printf("🔥 Failed to configure Cloudinary: %v", err)
		return s
	}
	s.upload = func(ctx context.Context, pdf []byte, studentID uuid.UUID) (string, error) {
		return uploadCertificate(ctx, cld, pdf, studentID)
	}
	return s
}

// Eligible reports whether a submission earns a certificate. Homework never does.
func (s *CertificateService) Eligible(sub *models.Submission, quiz *models.Quiz) bool {
	if quiz.Type != models.QuizTypeQuiz || sub.TotalQuestions == 0 {
		return false
	}
	return attempt.Percent(sub.Score, sub.TotalQuestions) >= s.passPercent
}

// OnSubmitted is registered as an attempt.SubmitHook.
func (s *CertificateService) OnSubmitted(ctx context.Context, sub *models.Submission, quiz *models.Quiz) {
	if !s.Eligible(sub, quiz) {
		return
	}
	if s.upload == nil {
		log.Printf("Skipping certificate for student %s: uploads not configured", sub.UserID)
		return
	}
	if err := s.issue(ctx, sub, quiz); err != nil {
		log.Printf("🔥 Failed to issue certificate for student %s quiz %s: %v", sub.UserID, quiz.ID, err)
	}
}

func (s *CertificateService) issue(ctx context.Context, sub *models.Submission, quiz *models.Quiz) error {
	exists, err := s.store.CertificateExists(ctx, sub.UserID, quiz.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	student, err := s.store.FindUser(ctx, sub.UserID)
	if err != nil {
		return fmt.Errorf("load student: %w", err)
	}

	percent := attempt.Percent(sub.Score, sub.TotalQuestions)
	completed := s.now()
	html, err := renderCertificateHTML(student.FullName, quiz, percent, completed)
	if err != nil {
		return fmt.Errorf("render certificate: %w", err)
	}

	pdf, err := s.render(ctx, html)
	if err != nil {
		return fmt.Errorf("generate PDF: %w", err)
	}

	url, err := s.upload(ctx, pdf, sub.UserID)
	if err != nil {
		return fmt.Errorf("upload certificate: %w", err)
	}

	cert := models.Certificate{
		StudentID:      sub.UserID,
		QuizID:         quiz.ID,
		Title:          quiz.Title,
		Percent:        percent,
		CompletionDate: completed,
		CertificateURL: url,
	}
	if err := s.store.CreateCertificate(ctx, &cert); err != nil {
		return fmt.Errorf("save certificate: %w", err)
	}

	log.Printf("✅ Generated and uploaded certificate '%s' for student %s.", quiz.Title, sub.UserID)
	return nil
}

func renderCertificateHTML(studentName string, quiz *models.Quiz, percent int, completed time.Time) (string, error) {
	data := struct {
		StudentName    string
		QuizTitle      string
		Category       models.Category
		Percent        int
		CompletionDate string
	}{
		StudentName:    studentName,
		QuizTitle:      quiz.Title,
		Category:       quiz.Category,
		Percent:        percent,
		CompletionDate: completed.Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := certificateTemplate.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).WithLandscape(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(ctx context.Context, cld *cloudinary.Cloudinary, pdf []byte, studentID uuid.UUID) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(pdf), uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s_%s", studentID, uuid.New()),
		Folder:       "tutoring_center_certificates",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
