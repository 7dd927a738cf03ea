package server

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/N-Varsha-Nayak/jobnotify/internal/handler/health"
)

// IndexChecker reports an error unless index names a regular file in root.
func IndexChecker(root fs.FS, index string) health.Checker {
	name := strings.TrimPrefix(index, "/")
	return health.CheckerFunc(func(_ context.Context) error {
		info, err := fs.Stat(root, name)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", name)
		}
		return nil
	})
}
