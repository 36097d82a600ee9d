package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/server"
	"github.com/abhisek/gradewise/internal/weights"
)

var errInvalid = errors.New("grading weights are not saveable")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a subject's weights total 100%",
	Long: `Check the save gate for a subject without changing anything.

With --file, validates a local JSON tree (or scores response) or a YAML seed
file instead of the remote subject. Exits non-zero when any tree fails.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			return validateFile(path)
		}
		return withAdapter(cmd, func(a *gradesync.Adapter) error {
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			return reportGate(a.SubjectID(), a.Snapshot().Draft)
		})
	},
}

func init() {
	validateCmd.Flags().StringP("file", "f", "", "Validate a local .json tree or .yaml seed file")
}

func validateFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		subjects, err := server.LoadSeed(path)
		if err != nil {
			return err
		}
		var failed bool
		for _, s := range subjects {
			if err := reportGate(s.ID, weights.NewDraft(s.Tree)); err != nil {
				failed = true
			}
		}
		if failed {
			return errInvalid
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := decodeTree(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return reportGate(filepath.Base(path), weights.NewDraft(tree))
}

// decodeTree accepts a bare tree or a full scores response.
func decodeTree(data []byte) (weights.Tree, error) {
	var wrapped struct {
		ScoreStructure *weights.Tree `json:"scoreStructure"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return weights.Tree{}, err
	}
	if wrapped.ScoreStructure != nil {
		return *wrapped.ScoreStructure, nil
	}
	var t weights.Tree
	err := json.Unmarshal(data, &t)
	return t, err
}

func reportGate(name string, d weights.Draft) error {
	gate := d.CanSave()
	if gate.OK {
		fmt.Printf("%s: ok (100%%)\n", name)
		return nil
	}
	fmt.Printf("%s: %s\n", name, gradesync.Describe(gate.Err()))
	printAllocation(os.Stdout, d)
	fmt.Println()
	return errInvalid
}
