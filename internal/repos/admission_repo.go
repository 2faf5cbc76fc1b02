package repos

import (
	"unobhala/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdmissionRepo struct{ db *sqlx.DB }

func NewAdmissionRepo(db *sqlx.DB) *AdmissionRepo { return &AdmissionRepo{db: db} }

func (r *AdmissionRepo) Insert(a domain.Admission) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO admissions(
	    learner_name, parent_name, phone, email, grade,
	    birth_certificate, parent_id_copy, latest_report, proof_of_residence,
	    message, payment_status, payment_id, amount_paid, status)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.LearnerName, a.ParentName, a.Phone, a.Email, a.Grade,
		a.BirthCertificate, a.ParentIDCopy, a.LatestReport, a.ProofOfResidence,
		a.Message, a.PaymentStatus, a.PaymentID, a.AmountPaid, a.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *AdmissionRepo) Get(id int64) (domain.Admission, error) {
	var a domain.Admission
	err := r.db.Get(&a, `
	  SELECT id, COALESCE(learner_name,'') AS learner_name,
	         COALESCE(parent_name,'') AS parent_name,
	         COALESCE(phone,'') AS phone, COALESCE(email,'') AS email,
	         COALESCE(grade,'') AS grade, COALESCE(amount_paid,'') AS amount_paid,
	         COALESCE(birth_certificate,'') AS birth_certificate,
	         COALESCE(parent_id_copy,'') AS parent_id_copy,
	         COALESCE(latest_report,'') AS latest_report,
	         COALESCE(proof_of_residence,'') AS proof_of_residence,
	         COALESCE(message,'') AS message,
	         payment_status, COALESCE(payment_id,'') AS payment_id,
	         status, created_at
	  FROM admissions WHERE id = ?
	`, id)
	return a, err
}

func (r *AdmissionRepo) ListLatest() ([]domain.Admission, error) {
	var out []domain.Admission
	err := r.db.Select(&out, `
	  SELECT id, COALESCE(learner_name,'') AS learner_name,
	         COALESCE(parent_name,'') AS parent_name,
	         COALESCE(phone,'') AS phone, COALESCE(email,'') AS email,
	         COALESCE(grade,'') AS grade, COALESCE(amount_paid,'') AS amount_paid,
	         COALESCE(birth_certificate,'') AS birth_certificate,
	         COALESCE(parent_id_copy,'') AS parent_id_copy,
	         COALESCE(latest_report,'') AS latest_report,
	         COALESCE(proof_of_residence,'') AS proof_of_residence,
	         COALESCE(message,'') AS message,
	         payment_status, COALESCE(payment_id,'') AS payment_id,
	         status, created_at
	  FROM admissions ORDER BY id DESC
	`)
	return out, err
}

// MarkPaid is the manual back-office override for fee payments taken offline.
func (r *AdmissionRepo) MarkPaid(id int64, amount string) error {
	_, err := r.db.Exec(`
	  UPDATE admissions SET payment_status = ?, amount_paid = ? WHERE id = ?
	`, domain.AdmissionPaid, amount, id)
	return err
}

func (r *AdmissionRepo) CountNew() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM admissions WHERE status = ?`, domain.AdmissionNew)
	return n, err
}
