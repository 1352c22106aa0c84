package handler

import (
	"keyimport-core/internal/handler/request"
	"keyimport-core/internal/handler/response"
	"keyimport-core/pkg/config"
	"keyimport-core/pkg/importer"
	"keyimport-core/pkg/logger"
	"keyimport-core/pkg/monitor"
	"keyimport-core/pkg/secguard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ImportHandler struct{}

var Import = &ImportHandler{}

// Detect classifies input without running a parser. The detection label is
// safe to show; the input itself is never echoed back or logged.
func (h *ImportHandler) Detect(c *gin.Context) {
	var req request.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, importer.NewImportError(importer.ErrCodeInvalidFormat, "request body does not bind"))
		return
	}
	if len(req.Input) > config.Global.Importer.MaxInputSize {
		response.Error(c, importer.NewImportError(importer.ErrCodeFileTooLarge, "input exceeds the configured size limit"))
		return
	}

	det := importer.DetectFile(req.Input, req.Filename)
	if det == nil {
		monitor.Business.DetectTotal.WithLabelValues("none").Inc()
		response.Error(c, importer.NewImportError(importer.ErrCodeInvalidFormat, "input does not match any supported key format"))
		return
	}

	monitor.Business.DetectTotal.WithLabelValues(string(det.Format)).Inc()
	logger.Debug("detected input format",
		zap.String("format", string(det.Format)),
		zap.String("confidence", string(det.Confidence)))
	response.Success(c, det)
}

// Inspect parses input and returns the non-secret view of the result: type,
// source format, fingerprint and preview address. Secret fields are excluded
// from serialization and their buffers are wiped before the response goes
// out. BIP38 decryption is refused here; passwords do not travel over HTTP.
func (h *ImportHandler) Inspect(c *gin.Context) {
	var req request.InspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, importer.NewImportError(importer.ErrCodeInvalidFormat, "request body does not bind"))
		return
	}

	opts := importer.Options{
		Passphrase:   req.Passphrase,
		Script:       importer.ScriptType(req.Script),
		Filename:     req.Filename,
		MaxInputSize: config.Global.Importer.MaxInputSize,
	}

	bip38 := req.Format == string(importer.FormatBIP38Encrypted)
	if !bip38 {
		det := importer.DetectFile(req.Input, req.Filename)
		bip38 = det != nil && det.Format == importer.FormatBIP38Encrypted
	}
	if bip38 {
		monitor.Business.ImportErrorTotal.WithLabelValues(string(importer.ErrCodeEncryptedUnsupported)).Inc()
		response.Error(c, importer.NewImportError(importer.ErrCodeEncryptedUnsupported,
			"encrypted keys cannot be decrypted over HTTP, use the command line tool"))
		return
	}

	var result *importer.ImportResult
	var err error
	if req.Format != "" {
		// Explicit formats bypass detection, so the size cap runs here.
		if len(req.Input) > opts.MaxInputSize {
			response.Error(c, importer.NewImportError(importer.ErrCodeFileTooLarge, "input exceeds the configured size limit"))
			return
		}
		result, err = importer.ImportAs(importer.ImportFormat(req.Format), req.Input, opts)
	} else {
		result, err = importer.Import(req.Input, opts)
	}
	if err != nil {
		code, _ := importer.Decode(err)
		monitor.Business.ImportErrorTotal.WithLabelValues(string(code)).Inc()
		if code == importer.ErrCodeTestnetRejected {
			monitor.Business.TestnetRejectTotal.Inc()
		}
		logger.Info("import rejected", zap.String("code", string(code)))
		response.Error(c, err)
		return
	}

	secguard.Zero(result.Seed)
	result.Mnemonic = secguard.ZeroString(result.Mnemonic)
	result.Passphrase = secguard.ZeroString(result.Passphrase)
	result.Xprv = secguard.ZeroString(result.Xprv)
	result.WIF = secguard.ZeroString(result.WIF)
	for i := range result.Keys {
		result.Keys[i].WIF = secguard.ZeroString(result.Keys[i].WIF)
	}
	for i := range result.Descriptors {
		result.Descriptors[i].Xprv = secguard.ZeroString(result.Descriptors[i].Xprv)
	}

	monitor.Business.ImportTotal.WithLabelValues(string(result.SourceFormat), string(result.Type)).Inc()
	logger.Info("import inspected",
		zap.String("format", string(result.SourceFormat)),
		zap.String("type", string(result.Type)),
		secguard.String("preview", result.PreviewAddress))
	response.Success(c, result)
}

// Suggest returns wordlist completions for live phrase entry. Only the
// prefix being typed reaches the server, never the full phrase.
func (h *ImportHandler) Suggest(c *gin.Context) {
	var req request.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, importer.NewImportError(importer.ErrCodeInvalidFormat, "request body does not bind"))
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = 10
	}
	response.Success(c, gin.H{
		"suggestions": importer.GetWordSuggestions(req.Prefix, limit),
		"isValidWord": importer.IsValidWord(req.Prefix),
	})
}
