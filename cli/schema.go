package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v2"

	"go.viam.com/latticeplan/config"
)

// SchemaAction prints the JSON schema that plan config files follow.
func SchemaAction(c *cli.Context) error {
	schema := jsonschema.Reflect(&config.PlanConfig{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
