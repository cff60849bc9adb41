package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveScroll updates the scroll section in the config file, preserving
// comments and formatting in other sections by editing the yaml.Node
// tree instead of re-marshaling the whole document.
func SaveScroll(configPath string, scroll ScrollConfig) error {
	if err := ValidateScroll(scroll); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	scrollNode := buildScrollNode(scroll)

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "scroll"},
						scrollNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "scroll" {
					root.Content[i+1] = scrollNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "scroll"},
					scrollNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

func buildScrollNode(s ScrollConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "alignment"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(s.Alignment, 'g', -1, 64)},
			{Kind: yaml.ScalarNode, Value: "duration_ms"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(s.DurationMS)},
			{Kind: yaml.ScalarNode, Value: "curve"},
			{Kind: yaml.ScalarNode, Value: s.Curve},
			{Kind: yaml.ScalarNode, Value: "overscan"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(s.Overscan)},
			{Kind: yaml.ScalarNode, Value: "estimated_height"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(s.EstimatedHeight)},
		},
	}
}

// writeAtomic writes data to path via a temp file and rename, so a crash
// mid-write never leaves a truncated config.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".scrollto.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
