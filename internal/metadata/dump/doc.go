// Package dump loads a metadata Universe from a YAML or JSON dump file.
//
// A dump is the type universe of a compiled program written out by an
// external disassembler. Its layout:
//
//	version: 1.0.0
//	module: Assembly-CSharp.dll
//	types:
//	  - namespace: Share
//	    name: CPtcLogin
//	    base: System.Object
//	    interfaces: [Share.IPolymorphsimObject]
//	    fields:
//	      - name: ID
//	        type: System.UInt16
//	        constant: {type: U2, value: 101}
//	    properties:
//	      - name: Items
//	        type: Share.CPList`1<Share.CItem>
//	    nested:
//	      - name: CArg
//	        properties: [...]
//	  - namespace: Share
//	    name: EColor
//	    enum: I2
//	    fields:
//	      - {name: Red, constant: {type: I2, value: 1}}
//	references:
//	  - {namespace: Other, name: CExternal}
//
// Type signatures are written in their rendered form (see
// metadata.ParseTypeSig) or as a mapping with namespace, name, args and
// param keys. Constants carry either a typed value or the raw
// little-endian blob as hex.
//
// Dumps are validated against an embedded JSON schema before decoding, and
// their version must satisfy SupportedVersions.
package dump
