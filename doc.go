/*
Package eccpem generates elliptic curve key pairs and moves them between
an in-memory binary representation and PEM text files.

The operations include:

-- Generating a key pair and writing it to PEM files, private and public
keys separately

-- Reading a private key file back into a fixed-width scalar buffer

-- Reading a public key file back into a SEC1 compressed point buffer

-- Passphrase-protecting a private key file

-- Recovering a private key from a mnemonic phrase

Supported curves are secp256k1 and prime256v1.

See the examples for more information.
*/
package eccpem
