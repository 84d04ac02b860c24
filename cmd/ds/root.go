package ds

import (
	"github.com/ValentinKolb/rDS/cmd/util"
	"github.com/ValentinKolb/rDS/lib/client"
	rpcclient "github.com/ValentinKolb/rDS/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcClient client.IStructClient

	// DataStructureCommands represents the structure command group
	DataStructureCommands = &cobra.Command{
		Use:               "ds",
		Short:             "Perform data structure operations on a remote server",
		PersistentPreRunE: setupDSClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the command group
	util.SetupRPCClientFlags(DataStructureCommands)

	// Default space ID for structure operations
	DataStructureCommands.PersistentFlags().Int("space", 100, util.WrapString("ID of the space to connect to"))

	// Add subcommands
	DataStructureCommands.AddCommand(listCmd)
	DataStructureCommands.AddCommand(setCmd)
	DataStructureCommands.AddCommand(hashCmd)
	DataStructureCommands.AddCommand(delCmd)
	DataStructureCommands.AddCommand(hasCmd)
	DataStructureCommands.AddCommand(perfTestCmd)
}

// setupDSClient initializes the RPC structure client
func setupDSClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	spaceID := util.GetSpaceID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	// Create the structure client
	rpcClient, err = rpcclient.NewRPCStructClient(
		spaceID,
		*config,
		t,
		s,
	)

	return err
}
