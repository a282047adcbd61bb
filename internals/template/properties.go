package template

import (
	"os"

	"github.com/magiconair/properties"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
)

// largeHost is the amount of memory above which gradle gets more heap
const largeHost = 8 << 30

// DefaultJVMArgs returns the gradle daemon arguments for this machine
func DefaultJVMArgs() string {
	return jvmArgsFor(memory.TotalMemory())
}

func jvmArgsFor(total uint64) string {
	if total >= largeHost {
		return "-Xmx2G"
	}
	return "-Xmx1G"
}

// property is a single gradle.properties entry
type property struct {
	key   string
	value string
}

func gradleProperties(p *Project, loader *fabric.LoaderEntry, compat string, jvmArgs string) []property {
	return []property{
		{"org.gradle.jvmargs", jvmArgs},
		{"minecraft_version", p.MinecraftVersion},
		{"yarn_mappings", loader.Mappings.Version},
		{"loader_version", loader.Loader.Version},
		{"mod_version", p.Version},
		{"maven_group", p.Group},
		{"archives_base_name", p.ArchiveBaseName},
		{"fabric_version", compat},
	}
}

// writeGradleProperties updates file in place. Keys the template sets but we
// don't know about (like loom_version) keep their value and comments
func writeGradleProperties(file string, values []property) error {
	props, err := properties.LoadFile(file, properties.UTF8)
	if err != nil {
		if _, statErr := os.Stat(file); !os.IsNotExist(statErr) {
			return errors.Wrap(err, "could not read gradle.properties")
		}
		props = properties.NewProperties()
	}
	props.DisableExpansion = true

	for _, v := range values {
		if _, _, err := props.Set(v.key, v.value); err != nil {
			return errors.Wrapf(err, "could not set %s", v.key)
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := props.WriteComment(f, "# ", properties.UTF8); err != nil {
		return errors.Wrap(err, "could not write gradle.properties")
	}
	return nil
}
