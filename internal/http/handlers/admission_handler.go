package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "unobhala/internal/log"
	"unobhala/internal/metrics"
	"unobhala/internal/services"
	"unobhala/internal/uploads"
	"unobhala/internal/validate"
)

type AdmissionHandler struct {
	Store     *session.Store
	Admission *services.AdmissionService
	Uploads   *uploads.Saver
}

func (h *AdmissionHandler) Info(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "admissions", nil)
}

// Form shows the application form once the session fee flag is set.
func (h *AdmissionHandler) Form(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	if !boolFlag(sess, sessAdmissionPaid) {
		return flashRedirect(c, sess, "warning", "Please pay the R150 admission fee first.", "/admissions")
	}
	return render(c, sess, "admission_form", fiber.Map{"Paid": true})
}

// Submit persists the application and consumes the session fee flag so it
// cannot gate a second free submission.
func (h *AdmissionHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	if !boolFlag(sess, sessAdmissionPaid) {
		applog.Security(c, "admission.submit.unpaid", nil)
		return flashRedirect(c, sess, "danger", "Admission fee not confirmed.", "/admissions")
	}

	learner, okL := validate.Name(c.FormValue("learner_name"))
	parent, okP := validate.Name(c.FormValue("parent_name"))
	phone, okPh := validate.Phone(c.FormValue("phone"))
	grade, okG := validate.Grade(c.FormValue("grade"))
	email, _ := validate.Email(c.FormValue("email"))
	if !okL || !okP || !okPh || !okG {
		return flashRedirect(c, sess, "danger", "Please complete all required fields.", "/admissions")
	}

	saveDoc := func(field string) string {
		fh, err := c.FormFile(field)
		if err != nil {
			return ""
		}
		path, err := h.Uploads.Save(c, fh)
		if err != nil {
			applog.Security(c, "admission.upload.reject", map[string]any{"field": field, "err": err.Error()})
			return ""
		}
		return path
	}

	form := services.AdmissionForm{
		LearnerName:      learner,
		ParentName:       parent,
		Phone:            phone,
		Email:            email,
		Grade:            grade,
		Message:          c.FormValue("message"),
		BirthCertificate: saveDoc("birth_certificate"),
		ParentIDCopy:     saveDoc("parent_id_copy"),
		LatestReport:     saveDoc("latest_report"),
		ProofOfResidence: saveDoc("proof_of_residence"),
	}

	id, err := h.Admission.Submit(form)
	if errors.Is(err, services.ErrMissingFields) {
		return flashRedirect(c, sess, "danger", "Please complete all required fields.", "/admissions")
	}
	if err != nil {
		applog.Error(c, "admission.submit", err, nil)
		return flashRedirect(c, sess, "danger", "Submission failed. Try again.", "/admissions")
	}

	sess.Delete(sessAdmissionPaid)
	applog.Audit(c, "admission.submit", map[string]any{"admission_id": id})
	return flashRedirect(c, sess, "success", "Admission submitted successfully!", "/admission-sent")
}

func (h *AdmissionHandler) Sent(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	return render(c, sess, "admission_sent", nil)
}

// FeeSuccess is the browser return leg after paying the fee.
func (h *AdmissionHandler) FeeSuccess(c *fiber.Ctx) error {
	sess, err := h.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessAdmissionPaid, true)
	return flashRedirect(c, sess, "success",
		"Admission fee paid successfully. Please complete the application form.", "/admissions")
}

// FeeNotification consumes the fee ITN and marks the session paid on success.
func (h *AdmissionHandler) FeeNotification(c *fiber.Ctx) error {
	payload := formValues(c)
	err := h.Admission.HandleFeeNotification(c.Context(), payload)

	switch {
	case err == nil:
		sess, serr := h.Store.Get(c)
		if serr != nil {
			return serr
		}
		sess.Set(sessAdmissionPaid, true)
		if serr := sess.Save(); serr != nil {
			return serr
		}
		metrics.RecordNotification("admission", "paid")
		applog.Audit(c, "admission.fee.paid", nil)
		return c.SendString("OK")
	case errors.Is(err, services.ErrInvalidNotification):
		metrics.RecordNotification("admission", "invalid")
		applog.Security(c, "admission.itn.invalid", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Invalid ITN")
	case errors.Is(err, services.ErrMerchantMismatch):
		metrics.RecordNotification("admission", "merchant_mismatch")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid merchant")
	case errors.Is(err, services.ErrAmountMismatch):
		metrics.RecordNotification("admission", "amount_mismatch")
		return c.Status(fiber.StatusBadRequest).SendString("Amount mismatch")
	default:
		metrics.RecordNotification("admission", "not_complete")
		return c.Status(fiber.StatusBadRequest).SendString("Payment not complete")
	}
}
