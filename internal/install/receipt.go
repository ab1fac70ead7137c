// SPDX-License-Identifier: MPL-2.0

package install

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"patbundle-cli/internal/fsprobe"
)

// ReceiptName is the metadata file Install writes into the target. It is
// not part of the bundle layout and no manifest lists it.
const ReceiptName = ".patbundle-receipt.toml"

// receiptSchemaVersion tracks the receipt file layout.
const receiptSchemaVersion = 1

// Receipt records how and when a bundle was installed.
type Receipt struct {
	SchemaVersion int       `toml:"schema_version"`
	InstalledAt   time.Time `toml:"installed_at"`
	Source        string    `toml:"source"`
	TotalFiles    int       `toml:"total_files"`
}

// writeReceipt writes the install receipt into target. The file count is
// taken before the receipt itself exists, so it reflects bundle content only.
func writeReceipt(target, source string) error {
	absSource, err := filepath.Abs(source)
	if err != nil {
		absSource = source
	}

	r := Receipt{
		SchemaVersion: receiptSchemaVersion,
		InstalledAt:   time.Now().UTC(),
		Source:        absSource,
		TotalFiles:    fsprobe.CountFiles(target),
	}

	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	return os.WriteFile(filepath.Join(target, ReceiptName), data, 0644)
}

// ReadReceipt loads the install receipt from target. Returns an error when
// no receipt exists or it cannot be decoded.
func ReadReceipt(target string) (*Receipt, error) {
	data, err := os.ReadFile(filepath.Join(target, ReceiptName))
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}

	var r Receipt
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return &r, nil
}
