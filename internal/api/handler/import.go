package handler

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/domain"
	"github.com/vfg2006/agent-performance-api/internal/usecases/importing"
	"github.com/vfg2006/agent-performance-api/pkg/apiErrors"
	"github.com/vfg2006/agent-performance-api/pkg/log"
	"github.com/vfg2006/agent-performance-api/pkg/utils"
)

const importFormField = "file"

// ImportReports recebe a planilha no campo multipart "file" (.csv, .xlsx ou .xls)
func ImportReports(service importing.Importer, maxUploadMB int64) http.Handler {
	maxBytes := maxUploadMB << 20

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportReports")

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrImportTooLarge, fmt.Sprintf("Arquivo acima do limite de %d MB", maxUploadMB), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição multipart inválida", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(importFormField)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		if !importing.IsSupported(header.Filename) {
			apiErrors.WriteError(w, apiErrors.ErrImportUnsupported, "Formatos aceitos: .csv, .xlsx e .xls", nil)
			return
		}

		result, err := service.Import(r.Context(), domain.ImportSourceUpload, header.Filename, file)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("import_file", header.Filename).Error("Erro ao importar planilha")
			writeServiceError(w, err, "Erro ao importar planilha")
			return
		}

		utils.WriteJSON(w, http.StatusOK, result)
	})
}

// ImportSheet importa um intervalo de uma planilha do Google Sheets
func ImportSheet(service importing.Importer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportSheet")

		var request domain.SheetImportRequest
		if err := utils.DecodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		result, err := service.ImportSheet(r.Context(), request)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("import_spreadsheet", request.SpreadsheetID).Error("Erro ao importar planilha do Google")
			writeServiceError(w, err, "Erro ao importar planilha do Google")
			return
		}

		utils.WriteJSON(w, http.StatusOK, result)
	})
}
