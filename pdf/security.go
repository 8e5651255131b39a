package pdf

import (
	"bytes"
	"errors"
	"strings"

	"file_tools/toolerr"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MinPasswordLength is the shortest accepted protection password.
const MinPasswordLength = 4

// Protect encrypts data with AES-256. The password opens the document and
// owns it; the only permission granted to readers is printing.
func Protect(data []byte, password, confirm string) ([]byte, error) {
	const op = "pdf.Protect"
	if len(password) < MinPasswordLength {
		return nil, toolerr.Rejected(op, "password must be at least %d characters", MinPasswordLength)
	}
	if password != confirm {
		return nil, toolerr.Rejected(op, "passwords do not match")
	}
	if _, err := PageCount(data); err != nil {
		return nil, err
	}

	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewAESConfiguration(password, password, 256)
	conf.ValidationMode = model.ValidationRelaxed
	conf.Permissions = model.PermissionsPrint

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return out.Bytes(), nil
}

// Unlock removes the encryption of data using password. A wrong password is
// InputRejected.
func Unlock(data []byte, password string) ([]byte, error) {
	const op = "pdf.Unlock"
	if len(data) == 0 {
		return nil, toolerr.Decode(op, errors.New("empty document"))
	}

	conf := newConfig()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf); err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) || strings.Contains(err.Error(), "password") {
			return nil, toolerr.Rejected(op, "wrong password")
		}
		return nil, toolerr.Decode(op, err)
	}
	return out.Bytes(), nil
}
