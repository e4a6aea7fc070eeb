package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxImportBytes limita el cuerpo de POST /pets/import.
const maxImportBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		// Export / import del archivo completo (CSV)
		pr.Get("/export", exportPetsHandler(svc))
		pr.Post("/import", importPetsHandler(svc))

		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

// createPetRequest son los 7 campos del formulario. id es opcional.
type createPetRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Weight      string `json:"weight"`
	Description string `json:"description"`
}

// updatePetRequest: nil o "" = no tocar el campo.
type updatePetRequest struct {
	Name        *string `json:"name"`
	Species     *string `json:"species"`
	Age         *string `json:"age"`
	Gender      *string `json:"gender"`
	Weight      *string `json:"weight"`
	Description *string `json:"description"`
}

// petResponse es una mascota tal como está en el registro.
type petResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Weight      string `json:"weight"`
	Description string `json:"description"`
}

// importResponse resume un import.
type importResponse struct {
	Mode    ImportMode    `json:"mode" enums:"preview,replace,merge"`
	Records []petResponse `json:"records"`
	Added   int           `json:"added"`
	Skipped []string      `json:"skipped"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve la colección completa en el orden del archivo. Las filas mal formadas se omiten.
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {string} string "storage read error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Agregar mascota
// @Description Agrega una mascota al final del registro. Todos los campos salvo id son obligatorios; si id viene vacío se genera uno.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / campos faltantes"
// @Failure 409 {string} string "pet id already exists"
// @Failure 500 {string} string "storage error"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Add(r.Context(), AddInput{
			ID:          req.ID,
			Name:        req.Name,
			Species:     req.Species,
			Age:         req.Age,
			Gender:      req.Gender,
			Weight:      req.Weight,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Sobrescribe solo los campos enviados y no vacíos. El resto del registro y el orden de la colección no cambian.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "storage error"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), Patch{
			Name:        deref(req.Name),
			Species:     deref(req.Species),
			Age:         deref(req.Age),
			Gender:      deref(req.Gender),
			Weight:      deref(req.Weight),
			Description: deref(req.Description),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "storage error"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// exportPetsHandler godoc
// @Summary Exportar registro
// @Description Descarga la colección actual como CSV (7 columnas, sin header).
// @Tags pets
// @Produce text/csv
// @Success 200 {string} string "CSV"
// @Failure 500 {string} string "storage error"
// @Router /pets/export [get]
func exportPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Se arma en memoria para poder devolver 500 si falla la lectura.
		var buf bytes.Buffer
		if err := svc.ExportTo(r.Context(), &buf); err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="pets.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// importPetsHandler godoc
// @Summary Importar registro
// @Description Parsea un CSV en modo estricto: si alguna fila no tiene 7 campos se rechaza todo el lote. mode=preview no escribe; replace reemplaza la colección; merge agrega ids nuevos (gana el existente).
// @Tags pets
// @Accept text/csv
// @Produce json
// @Param mode query string false "preview | replace | merge" Enums(preview, replace, merge)
// @Param payload body string true "Contenido CSV"
// @Success 200 {object} importResponse
// @Failure 400 {string} string "mode inválido"
// @Failure 409 {string} string "ids repetidos en el lote"
// @Failure 413 {string} string "body demasiado grande"
// @Failure 422 {string} string "invalid data format"
// @Failure 500 {string} string "storage error"
// @Router /pets/import [post]
func importPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := ParseImportMode(r.URL.Query().Get("mode"))
		if err != nil {
			writeError(w, err)
			return
		}

		res, err := svc.ImportFrom(r.Context(), http.MaxBytesReader(w, r.Body, maxImportBytes), mode)
		if err != nil {
			writeError(w, err)
			return
		}

		out := importResponse{
			Mode:    res.Mode,
			Records: make([]petResponse, 0, len(res.Records)),
			Added:   res.Added,
			Skipped: res.Skipped,
		}
		if out.Skipped == nil {
			out.Skipped = []string{}
		}
		for _, p := range res.Records {
			out.Records = append(out.Records, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Age:         p.Age,
		Gender:      p.Gender,
		Weight:      p.Weight,
		Description: p.Description,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// statusFor traduce los errores del dominio a HTTP.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, ErrFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// no exponemos paths ni errores del sistema de archivos
		switch {
		case errors.Is(err, ErrStorageRead):
			msg = ErrStorageRead.Error()
		case errors.Is(err, ErrStorageWrite):
			msg = ErrStorageWrite.Error()
		default:
			msg = "internal error"
		}
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
