/*  This file is part of lvfpga-hdltools.
    lvfpga-hdltools is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    lvfpga-hdltools is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with lvfpga-hdltools.  If not, see <http://www.gnu.org/licenses/>. */

// Package cfg loads projectsettings.yaml, the single configuration document
// shared by all the tools. Each tool validates only the section it needs, so
// a project that never migrates a CLIP does not have to fill that section in.
package cfg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

const DefaultFile = "projectsettings.yaml"

type VivadoProject struct {
	Name           string   `yaml:"name"`
	TopEntity      string   `yaml:"top_entity"`
	FilesLists     []string `yaml:"files_lists"`
	DepsMarker     string   `yaml:"deps_marker"`
	GatheredDeps   string   `yaml:"gathered_deps"`
	NewTemplate    string   `yaml:"new_template"`
	UpdateTemplate string   `yaml:"update_template"`
}

type Target struct {
	SignalsCSV      string `yaml:"signals_csv"`
	BoardIOXML      string `yaml:"boardio_xml"`
	ClockXML        string `yaml:"clock_xml"`
	WindowTemplate  string `yaml:"window_template"`
	WindowOutput    string `yaml:"window_output"`
	WindowExample   string `yaml:"window_instantiation"`
	TargetTemplate  string `yaml:"target_template"`
	TargetOutput    string `yaml:"target_output"`
	IncludeSocket   *bool  `yaml:"include_clip_socket"`
	IncludeCustomIO *bool  `yaml:"include_custom_io"`
	ClockHierarchy  string `yaml:"clock_hierarchy"`
	ClockFreq       string `yaml:"clock_freq"`
	ClockAccuracy   string `yaml:"clock_accuracy_ppm"`
	ClockJitter     string `yaml:"clock_jitter_ps"`
	PrototypePrefix string `yaml:"prototype_prefix"`
}

type Migration struct {
	ClipXML       string   `yaml:"clip_xml"`
	SignalsCSV    string   `yaml:"signals_csv"`
	ClipHDLTop    string   `yaml:"clip_hdl_top"`
	ClipExample   string   `yaml:"clip_instantiation"`
	InstancePath  string   `yaml:"instance_path"` // HDL hierarchy path, not a file path
	SignalDefs    string   `yaml:"signal_definitions"`
	XDCIn         []string `yaml:"xdc_in"`
	XDCOutFolder  string   `yaml:"xdc_out_folder"`
}

type Install struct {
	PluginFolder  string `yaml:"plugin_folder"`
	InstallFolder string `yaml:"install_folder"`
	TargetName    string `yaml:"target_name"`
}

type Config struct {
	Architecture  string        `yaml:"architecture"`
	VivadoProject VivadoProject `yaml:"vivadoproject"`
	Target        Target        `yaml:"target"`
	Migration     Migration     `yaml:"migration"`
	Install       Install       `yaml:"install"`
}

// Load reads and parses the settings file. A missing or malformed file is a
// configuration error: the tools report it before any work begins.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open settings file %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return nil, fmt.Errorf("cannot parse settings file %s: %w", path, err)
	}
	c.fill_defaults()
	return &c, nil
}

func (c *Config) fill_defaults() {
	if c.Architecture == "" {
		c.Architecture = "rtl"
	}
	if c.VivadoProject.DepsMarker == "" {
		c.VivadoProject.DepsMarker = "githubdeps"
	}
	if c.VivadoProject.GatheredDeps == "" {
		c.VivadoProject.GatheredDeps = "objects/gathereddeps"
	}
	if c.VivadoProject.NewTemplate == "" {
		c.VivadoProject.NewTemplate = "TCL/CreateNewProjectTemplate.tcl"
	}
	if c.VivadoProject.UpdateTemplate == "" {
		c.VivadoProject.UpdateTemplate = "TCL/UpdateProjectFilesTemplate.tcl"
	}
	if c.Target.ClockHierarchy == "" {
		c.Target.ClockHierarchy = "TheWindow"
	}
	if c.Target.ClockFreq == "" {
		c.Target.ClockFreq = "250M"
	}
	if c.Target.ClockAccuracy == "" {
		c.Target.ClockAccuracy = "100"
	}
	if c.Target.ClockJitter == "" {
		c.Target.ClockJitter = "250"
	}
	if c.Target.PrototypePrefix == "" {
		c.Target.PrototypePrefix = "#{{document-root}}/Stock/"
	}
}

// IncludeSocketPorts defaults to true when the setting is absent.
func (t Target) IncludeSocketPorts() bool {
	return t.IncludeSocket == nil || *t.IncludeSocket
}

// IncludeCustom defaults to true when the setting is absent.
func (t Target) IncludeCustom() bool {
	return t.IncludeCustomIO == nil || *t.IncludeCustomIO
}

// Require checks that the named settings are present and reports every
// missing one in a single error, so the user fixes the file once.
func Require(section string, fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required settings in %s section: %s",
		section, strings.Join(missing, ", "))
}

// Resolve turns a settings-file path into an absolute one, anchored at the
// current working directory like the rest of the tools.
func Resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Clean(rel)
	}
	return filepath.Join(cwd, rel)
}
