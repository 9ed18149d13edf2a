package apic

import (
	"api-commonizer/internal/pkg/api"
	"api-commonizer/internal/pkg/common"
	"api-commonizer/internal/pkg/processors"
	"fmt"
)

// Commonize merges the platform-specific API descriptions at descriptionUrls
// into one common description written to outPath. Remote descriptions are
// cached under cacheDir.
func Commonize(descriptionUrls []string, outPath string, cacheDir string, upgrade bool, log *common.LogWriter) (err error) {
	defer func() {
		x := recover()
		if x != nil {
			if e, ok := x.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", x)
			}
		}
	}()

	if len(descriptionUrls) == 0 {
		return common.NewSystemError(fmt.Errorf("no target descriptions given"))
	}

	targets, err := processors.LoadTargets(descriptionUrls, cacheDir, log, upgrade)
	if err != nil {
		return err
	}

	roots := common.Map(func(t *processors.LoadedTarget) *api.Root { return t.Root }, targets)
	tree := processors.BuildTree(roots)
	merged, ok := processors.CommonizedRoot(tree)
	if !ok {
		return fmt.Errorf("target descriptions could not be commonized")
	}

	err = processors.WriteOutput(merged, targets[0].Dir, outPath)
	if err != nil {
		return err
	}
	log.Trace(fmt.Sprintf("commonized %d targets into `%s`", len(targets), outPath))
	return nil
}
