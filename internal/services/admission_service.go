package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"unobhala/internal/domain"
	"unobhala/internal/money"
	"unobhala/internal/payfast"
	"unobhala/internal/repos"
)

// AdmissionService handles the fee-gated application flow. The fee payment is
// confirmed per browser session, not per stored row: a successful fee ITN
// flips a session flag, and one form submission consumes it.
type AdmissionService struct {
	Admissions *repos.AdmissionRepo
	Validator  payfast.Validator
	MerchantID string
	Fee        float64
}

func NewAdmissionService(admissions *repos.AdmissionRepo, validator payfast.Validator,
	merchantID string, fee float64) *AdmissionService {
	return &AdmissionService{Admissions: admissions, Validator: validator, MerchantID: merchantID, Fee: fee}
}

// HandleFeeNotification runs the same gateway and merchant checks as order
// notifications, but against the fixed fee instead of a stored total. A nil
// return means the caller may set the session fee flag.
func (s *AdmissionService) HandleFeeNotification(ctx context.Context, payload url.Values) error {
	if err := s.Validator.Validate(ctx, payload); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidNotification, err)
	}
	if payload.Get(payfast.FieldMerchantID) != s.MerchantID {
		return ErrMerchantMismatch
	}
	if payload.Get(payfast.FieldPaymentStatus) != domain.PaymentComplete {
		return ErrPaymentNotComplete
	}
	gross, err := money.Parse(payload.Get(payfast.FieldAmountGross))
	if err != nil || !money.Equal(gross, s.Fee) {
		return ErrAmountMismatch
	}
	return nil
}

// AdmissionForm is the applicant input plus the already-saved document paths.
type AdmissionForm struct {
	LearnerName      string
	ParentName       string
	Phone            string
	Email            string
	Grade            string
	Message          string
	BirthCertificate string
	ParentIDCopy     string
	LatestReport     string
	ProofOfResidence string
}

// Submit persists an application. The caller must have verified the session
// fee flag; payment_status is recorded paid because the fixed fee is the only
// way that flag gets set.
func (s *AdmissionService) Submit(f AdmissionForm) (int64, error) {
	f.LearnerName = strings.TrimSpace(f.LearnerName)
	f.ParentName = strings.TrimSpace(f.ParentName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Grade = strings.TrimSpace(f.Grade)
	if f.LearnerName == "" || f.ParentName == "" || f.Phone == "" || f.Grade == "" {
		return 0, ErrMissingFields
	}
	return s.Admissions.Insert(domain.Admission{
		LearnerName:      f.LearnerName,
		ParentName:       f.ParentName,
		Phone:            f.Phone,
		Email:            strings.TrimSpace(f.Email),
		Grade:            f.Grade,
		Message:          strings.TrimSpace(f.Message),
		BirthCertificate: f.BirthCertificate,
		ParentIDCopy:     f.ParentIDCopy,
		LatestReport:     f.LatestReport,
		ProofOfResidence: f.ProofOfResidence,
		PaymentStatus:    domain.AdmissionPaid,
		AmountPaid:       money.Format(s.Fee),
		Status:           domain.AdmissionNew,
	})
}
