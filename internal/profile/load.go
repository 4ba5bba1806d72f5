package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/gcode-ejector/internal/model"
)

// Load reads a profile file and overlays it on Default.
//
// The format is chosen by extension: .yaml/.yml are decoded with yaml.v3,
// .json/.jsonc have their comments and trailing commas stripped with
// jsonc.ToJSON before encoding/json decodes them. Fields absent from the
// file keep their default value.
//
// The result is validated; any ValidationError makes Load fail with a
// CLIError carrying ExitProfileInvalid.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, model.WrapCLIError(
				model.ExitProfileInvalid,
				fmt.Sprintf("profile not found: %s", path),
				err,
			)
		}
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Profile{}, model.WrapCLIError(model.ExitProfileInvalid,
			fmt.Sprintf("failed to parse profile at %s", path), err)
	}

	if verrs := p.Validate(); len(verrs) > 0 {
		return Profile{}, model.WrapCLIError(model.ExitProfileInvalid,
			fmt.Sprintf("invalid profile %s", path), joinValidation(verrs))
	}
	return p, nil
}

// Parse decodes profile bytes in the format named by ext on top of Default.
// It does not validate.
func Parse(data []byte, ext string) (Profile, error) {
	p := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
			return Profile{}, err
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile format %q (valid: .yaml, .yml, .json, .jsonc)", ext)
	}
	return p, nil
}

// Marshal renders a profile as YAML, the format written by "profile init".
func Marshal(p Profile) ([]byte, error) {
	return yaml.Marshal(p)
}

func joinValidation(verrs []ValidationError) error {
	errs := make([]error, len(verrs))
	for i := range verrs {
		errs[i] = &verrs[i]
	}
	return errors.Join(errs...)
}
