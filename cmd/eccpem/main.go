// Package main provides the eccpem CLI for generating and reading
// elliptic curve key pair PEM files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regnull/eccpem"
)

var (
	curveName string
	pubFile   string
	privFile  string
	keySize   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eccpem",
		Short: "Generate and read elliptic curve key pair PEM files",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key pair and write it to PEM files",
		Example: `  eccpem generate --curve prime256v1 --pub pub.pem --priv priv.pem
  eccpem generate --curve secp256k1`,
		RunE: runGenerate,
	}
	generateCmd.Flags().StringVar(&curveName, "curve", "prime256v1", "Curve name (secp256k1, prime256v1)")
	generateCmd.Flags().StringVar(&pubFile, "pub", "pub.pem", "Public key output file")
	generateCmd.Flags().StringVar(&privFile, "priv", "priv.pem", "Private key output file")

	readPrivateCmd := &cobra.Command{
		Use:   "read-private <file>",
		Short: "Read a private key PEM file and print the scalar as hex",
		Args:  cobra.ExactArgs(1),
		RunE:  runReadPrivate,
	}
	readPrivateCmd.Flags().IntVar(&keySize, "size", 32, "Expected scalar size in bytes")

	readPublicCmd := &cobra.Command{
		Use:   "read-public <file>",
		Short: "Read a public key PEM file and print the compressed point as hex",
		Args:  cobra.ExactArgs(1),
		RunE:  runReadPublic,
	}
	readPublicCmd.Flags().IntVar(&keySize, "size", 33, "Expected compressed point size in bytes")

	rootCmd.AddCommand(generateCmd, readPrivateCmd, readPublicCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := eccpem.CreateKeyPairPemFiles(curveName, pubFile, privFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", privFile, pubFile)
	return nil
}

func runReadPrivate(cmd *cobra.Command, args []string) error {
	key, err := eccpem.ReadPrivateKeyPemFile(args[0], keySize)
	if err != nil {
		return err
	}
	fmt.Printf("%x\n", key)
	return nil
}

func runReadPublic(cmd *cobra.Command, args []string) error {
	key, err := eccpem.ReadPublicKeyPemFile(args[0], keySize)
	if err != nil {
		return err
	}
	fmt.Printf("%x\n", key)
	return nil
}
