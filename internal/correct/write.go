package correct

import (
	"fmt"
	"os"
	"path/filepath"

	"sourcespell/internal/textutil"
)

// writeAtomic replaces path with content encoded as enc. The file must still
// hash to wantHash; the new bytes go to a temporary sibling that is renamed
// over the original, keeping its permissions.
func writeAtomic(path, content, enc, wantHash string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if textutil.HashSHA256(current) != wantHash {
		return fmt.Errorf("file changed on disk since it was read")
	}
	data, err := textutil.Encode(content, enc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".sourcespell-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, info.Mode().Perm()); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
