package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CaseHandler struct {
	caseService *services.CaseService
}

func NewCaseHandler(caseService *services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

func (h *CaseHandler) List(c *fiber.Ctx) error {
	var filters dto.CaseFilters
	if err := c.QueryParser(&filters); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.caseService.List(filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *CaseHandler) Get(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return respondError(c, err)
	}

	cc, err := h.caseService.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cc)
}

func (h *CaseHandler) Create(c *fiber.Ctx) error {
	form, primary, additional, err := parseCaseRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cc, err := h.caseService.Create(form, primary, additional)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CaseCreatedResponse{
		Message: "Court case created successfully",
		ID:      cc.ID.String(),
	})
}

func (h *CaseHandler) Update(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return respondError(c, err)
	}
	form, primary, additional, err := parseCaseRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cc, err := h.caseService.Update(id, form, primary, additional)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cc)
}

// Delete moves the case to the trash.
func (h *CaseHandler) Delete(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.caseService.SoftDelete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Court case moved to trash"})
}

func (h *CaseHandler) Restore(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.caseService.Restore(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Court case restored"})
}

func (h *CaseHandler) Purge(c *fiber.Ctx) error {
	id, err := caseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.caseService.HardDelete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Court case permanently deleted"})
}

func (h *CaseHandler) Trash(c *fiber.Ctx) error {
	resp, err := h.caseService.ListTrashed()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *CaseHandler) MigrateDismissed(c *fiber.Ctx) error {
	n, err := h.caseService.MigrateDismissed()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusMigrationResponse{
		Message: fmt.Sprintf("Updated %d case(s) from Dismissed to In Court", n),
		Updated: n,
	})
}

// caseID parses the :id path segment. A malformed id cannot name a case.
func caseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.ErrCaseNotFound
	}
	return id, nil
}

// parseCaseRequest accepts either a JSON body or a multipart form with the
// images in "photo" and "photos". In a form, templeLocation is a JSON
// string.
func parseCaseRequest(c *fiber.Ctx) (dto.CaseForm, *dto.ImageFile, []dto.ImageFile, error) {
	var form dto.CaseForm

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&form); err != nil {
			return form, nil, nil, errors.New("Invalid request body")
		}
		return form, nil, nil, nil
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return form, nil, nil, errors.New("Invalid multipart form")
	}

	form = dto.CaseForm{
		CaseTitle:   c.FormValue("caseTitle"),
		Description: c.FormValue("description"),
		DateFiled:   c.FormValue("dateFiled"),
		Status:      c.FormValue("status"),
		CourtName:   c.FormValue("courtName"),
		JudgeName:   c.FormValue("judgeName"),
		Plaintiff:   c.FormValue("plaintiff"),
		Defendant:   c.FormValue("defendant"),
		CaseType:    c.FormValue("caseType"),
		Priority:    c.FormValue("priority"),
	}
	if raw := strings.TrimSpace(c.FormValue("templeLocation")); raw != "" {
		var loc dto.LocationInput
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			return form, nil, nil, errors.New("templeLocation must be a JSON object")
		}
		form.TempleLocation = &loc
	}

	var primary *dto.ImageFile
	if files := mf.File["photo"]; len(files) > 0 {
		img, err := readImage(files[0])
		if err != nil {
			return form, nil, nil, err
		}
		primary = img
	}

	additional := make([]dto.ImageFile, 0, len(mf.File["photos"]))
	for _, fh := range mf.File["photos"] {
		img, err := readImage(fh)
		if err != nil {
			return form, nil, nil, err
		}
		additional = append(additional, *img)
	}
	return form, primary, additional, nil
}

func readImage(fh *multipart.FileHeader) (*dto.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read %s", fh.Filename)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %s", fh.Filename)
	}
	return &dto.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}
