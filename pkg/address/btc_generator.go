package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptType selects the address family an importing caller wants to see.
type ScriptType string

const (
	ScriptP2WPKH    ScriptType = "wpkh"
	ScriptP2SHP2WPK ScriptType = "sh(wpkh)"
	ScriptP2PKH     ScriptType = "pkh"
	ScriptP2TR      ScriptType = "tr"
)

// Generator derives display addresses from public keys for the four
// supported script families.
type Generator struct {
	network *chaincfg.Params
}

// NewGenerator returns a generator for the given network. Nil defaults to
// mainnet, matching the rest of the import core.
func NewGenerator(network *chaincfg.Params) *Generator {
	if network == nil {
		network = &chaincfg.MainNetParams
	}
	return &Generator{network: network}
}

// Encode derives the address of pub for the requested script type.
func (g *Generator) Encode(pub *btcec.PublicKey, script ScriptType) (string, error) {
	switch script {
	case ScriptP2PKH:
		addr, err := btcutil.NewAddressPubKey(pub.SerializeCompressed(), g.network)
		if err != nil {
			return "", err
		}
		return addr.AddressPubKeyHash().EncodeAddress(), nil

	case ScriptP2WPKH:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(pub.SerializeCompressed()), g.network)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	case ScriptP2SHP2WPK:
		witness, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(pub.SerializeCompressed()), g.network)
		if err != nil {
			return "", err
		}
		redeem, err := txscript.PayToAddrScript(witness)
		if err != nil {
			return "", err
		}
		addr, err := btcutil.NewAddressScriptHash(redeem, g.network)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	case ScriptP2TR:
		taprootKey := txscript.ComputeTaprootKeyNoScript(pub)
		addr, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(taprootKey), g.network)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil
	}

	return "", fmt.Errorf("unsupported script type %q", script)
}

// EncodeLegacyUncompressed derives the P2PKH address of the uncompressed
// serialization of pub. BIP38 verification needs this form because the
// embedded address hash was computed over whichever serialization the
// original key used.
func (g *Generator) EncodeLegacyUncompressed(pub *btcec.PublicKey) (string, error) {
	addr, err := btcutil.NewAddressPubKey(pub.SerializeUncompressed(), g.network)
	if err != nil {
		return "", err
	}
	return addr.AddressPubKeyHash().EncodeAddress(), nil
}
