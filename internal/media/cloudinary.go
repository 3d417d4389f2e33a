package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"content_hub/internal/config"
	"content_hub/internal/domain"
)

const defaultUploadBase = "https://api.cloudinary.com/v1_1"

// File is one pending upload. Size and MIME come from the caller (form
// metadata or os.Stat); both are checked before any network call.
type File struct {
	Name    string
	Type    domain.FileType
	MIME    string
	Size    int64
	Content io.Reader
}

// Uploader pushes binary files to the hosted media service and returns
// durable public URLs. Requests are signed with the account's API secret.
type Uploader struct {
	httpClient *http.Client
	uploadBase string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	logger     *slog.Logger
}

func NewUploader(cfg config.CloudinaryConfig, logger *slog.Logger) *Uploader {
	return &Uploader{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		uploadBase: defaultUploadBase,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		folder:     cfg.Folder,
		logger:     logger.With("component", "media"),
	}
}

// Validate checks the per-type MIME allow-list and size ceiling. A failing
// file must never produce a network call, so callers run this before Upload
// does any work (Upload repeats it regardless).
func Validate(f File) error {
	if !f.Type.Valid() {
		return fmt.Errorf("unknown file type %q", f.Type)
	}

	allowed := domain.AllowedMIMETypes[f.Type]
	permitted := false
	for _, mime := range allowed {
		if f.MIME == mime {
			permitted = true
			break
		}
	}
	if !permitted {
		return fmt.Errorf("invalid file type %s, allowed types: %s", f.MIME, strings.Join(allowed, ", "))
	}

	if max := domain.MaxFileSize[f.Type]; f.Size > max {
		return fmt.Errorf("file size exceeds %dMB limit", max/(1024*1024))
	}
	return nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload validates and uploads one file, returning its durable URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signParams(map[string]string{
		"folder":    u.folder,
		"timestamp": timestamp,
	}, u.apiSecret)

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(u.writeForm(w, f, timestamp, signature))
	}()

	endpoint := fmt.Sprintf("%s/%s/%s/upload", u.uploadBase, u.cloudName, f.Type.ResourceType())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The error envelope is best effort: gateways in front of the service
		// answer with HTML bodies that do not parse as JSON.
		var errResp uploadResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("upload rejected: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}

	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if uploadResp.SecureURL == "" {
		return "", fmt.Errorf("upload response carries no URL")
	}

	u.logger.Debug("uploaded file",
		"name", f.Name,
		"type", f.Type,
		"public_id", uploadResp.PublicID,
	)
	return uploadResp.SecureURL, nil
}

// UploadAll uploads several files concurrently and waits for all of them.
// Results keep the input order. One file failing validation or upload does
// not abort the others; the joined error reports every failure.
func (u *Uploader) UploadAll(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i], errs[i] = u.Upload(ctx, files[i])
		}(i)
	}
	wg.Wait()

	return urls, errors.Join(errs...)
}

func (u *Uploader) writeForm(w *multipart.Writer, f File, timestamp, signature string) error {
	part, err := w.CreateFormFile("file", f.Name)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}

	fields := map[string]string{
		"api_key":   u.apiKey,
		"timestamp": timestamp,
		"folder":    u.folder,
		"signature": signature,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}
	return w.Close()
}

// signParams builds the request signature: parameters sorted by name, joined
// as key=value pairs with '&', the API secret appended, SHA-256 hex digest.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha256.Sum256([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
