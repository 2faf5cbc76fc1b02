package services_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/jmoiron/sqlx"

	"unobhala/internal/domain"
	"unobhala/internal/repos"
	"unobhala/internal/services"
)

func memdbAdmissions(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE admissions(id INTEGER PRIMARY KEY AUTOINCREMENT,
	  learner_name TEXT, parent_name TEXT, phone TEXT, email TEXT, grade TEXT,
	  birth_certificate TEXT, parent_id_copy TEXT, latest_report TEXT,
	  proof_of_residence TEXT, message TEXT,
	  payment_status TEXT NOT NULL DEFAULT 'unpaid',
	  payment_id TEXT, amount_paid TEXT,
	  status TEXT NOT NULL DEFAULT 'new',
	  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newAdmissionSvc(t *testing.T, db *sqlx.DB, v stubValidator) *services.AdmissionService {
	t.Helper()
	return services.NewAdmissionService(repos.NewAdmissionRepo(db), v, testMerchant, 150.00)
}

func feeITN(status, amount string) url.Values {
	return url.Values{
		"merchant_id":    {testMerchant},
		"payment_status": {status},
		"amount_gross":   {amount},
		"pf_payment_id":  {"pf-fee-0001"},
	}
}

func TestFeeNotificationAccepted(t *testing.T) {
	svc := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{})
	if err := svc.HandleFeeNotification(context.Background(), feeITN(domain.PaymentComplete, "150.00")); err != nil {
		t.Fatalf("exact complete fee must be accepted: %v", err)
	}
}

func TestFeeNotificationRejectsWrongAmount(t *testing.T) {
	svc := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{})

	for _, amount := range []string{"149.99", "150.01", "15.00", "", "abc"} {
		err := svc.HandleFeeNotification(context.Background(), feeITN(domain.PaymentComplete, amount))
		if !errors.Is(err, services.ErrAmountMismatch) {
			t.Fatalf("amount %q: want ErrAmountMismatch, got %v", amount, err)
		}
	}
}

func TestFeeNotificationRejectsNonComplete(t *testing.T) {
	svc := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{})

	for _, status := range []string{domain.PaymentFailed, domain.PaymentCancelled, "PENDING"} {
		err := svc.HandleFeeNotification(context.Background(), feeITN(status, "150.00"))
		if !errors.Is(err, services.ErrPaymentNotComplete) {
			t.Fatalf("status %q: want ErrPaymentNotComplete, got %v", status, err)
		}
	}
}

func TestFeeNotificationRejectsMerchantAndValidator(t *testing.T) {
	svc := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{})

	payload := feeITN(domain.PaymentComplete, "150.00")
	payload.Set("merchant_id", "999999")
	if err := svc.HandleFeeNotification(context.Background(), payload); !errors.Is(err, services.ErrMerchantMismatch) {
		t.Fatalf("want ErrMerchantMismatch, got %v", err)
	}

	bad := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{err: errors.New("no")})
	if err := bad.HandleFeeNotification(context.Background(), feeITN(domain.PaymentComplete, "150.00")); !errors.Is(err, services.ErrInvalidNotification) {
		t.Fatalf("want ErrInvalidNotification, got %v", err)
	}
}

func TestSubmitPersistsPaidApplication(t *testing.T) {
	db := memdbAdmissions(t)
	svc := newAdmissionSvc(t, db, stubValidator{})

	id, err := svc.Submit(services.AdmissionForm{
		LearnerName:      "  Sipho Khumalo ",
		ParentName:       "Thandi Khumalo",
		Phone:            "0831112222",
		Email:            "thandi@example.com",
		Grade:            "Grade 8",
		Message:          "Transfer from Eastview Primary",
		BirthCertificate: "uploads/abc_birth.pdf",
		ParentIDCopy:     "uploads/abc_id.pdf",
	})
	if err != nil {
		t.Fatal(err)
	}

	a, err := repos.NewAdmissionRepo(db).Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if a.LearnerName != "Sipho Khumalo" {
		t.Fatalf("learner name must be trimmed, got %q", a.LearnerName)
	}
	if a.PaymentStatus != domain.AdmissionPaid || a.AmountPaid != "150.00" {
		t.Fatalf("fee-gated submission must record the paid fee: %s / %s", a.PaymentStatus, a.AmountPaid)
	}
	if a.Status != domain.AdmissionNew {
		t.Fatalf("new applications start in status new, got %s", a.Status)
	}
}

func TestSubmitRequiresCoreFields(t *testing.T) {
	svc := newAdmissionSvc(t, memdbAdmissions(t), stubValidator{})

	base := services.AdmissionForm{
		LearnerName: "Sipho", ParentName: "Thandi", Phone: "0831112222", Grade: "Grade 8",
	}
	for _, blank := range []func(*services.AdmissionForm){
		func(f *services.AdmissionForm) { f.LearnerName = " " },
		func(f *services.AdmissionForm) { f.ParentName = "" },
		func(f *services.AdmissionForm) { f.Phone = "" },
		func(f *services.AdmissionForm) { f.Grade = "" },
	} {
		f := base
		blank(&f)
		if _, err := svc.Submit(f); !errors.Is(err, services.ErrMissingFields) {
			t.Fatalf("want ErrMissingFields for %+v, got %v", f, err)
		}
	}
}

func TestMarkPaidOverride(t *testing.T) {
	db := memdbAdmissions(t)
	repo := repos.NewAdmissionRepo(db)

	id, err := repo.Insert(domain.Admission{
		LearnerName: "Sipho", ParentName: "Thandi", Phone: "0831112222",
		Grade: "Grade 8", PaymentStatus: domain.AdmissionUnpaid, Status: domain.AdmissionNew,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkPaid(id, "150.00"); err != nil {
		t.Fatal(err)
	}
	a, err := repo.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if a.PaymentStatus != domain.AdmissionPaid || a.AmountPaid != "150.00" {
		t.Fatalf("manual override not applied: %s / %s", a.PaymentStatus, a.AmountPaid)
	}
}
