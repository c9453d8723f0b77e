package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nrbfedit/nrbfedit/nrbf"
)

var (
	setType string
	setOut  string
)

var setCmd = &cobra.Command{
	Use:   "set <nrbf-file> <path> <value>",
	Short: "Overwrite the value at a path and write the result",
	Long: `Overwrite the primitive, string, or GUID value at path and
re-encode the document to --out. --type is required and names the
value's type, which must match the existing slot's type.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&setType, "type", "", "value type: bool,byte,sbyte,char,int16,int32,int64,uint16,uint32,uint64,float32,float64,string,guid")
	setCmd.Flags().StringVar(&setOut, "out", "", "path to write the edited file (required)")
	setCmd.MarkFlagRequired("type")
	setCmd.MarkFlagRequired("out")
}

func runSet(cmd *cobra.Command, args []string) error {
	path, fieldPath, raw := args[0], args[1], args[2]

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	if err := applySet(doc, fieldPath, setType, raw); err != nil {
		return fmt.Errorf("failed to set %s: %w", fieldPath, err)
	}

	out, err := doc.Save()
	if err != nil {
		return fmt.Errorf("failed to re-encode document: %w", err)
	}
	if err := os.WriteFile(setOut, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", setOut, err)
	}

	fmt.Fprintf(output, "wrote %s\n", setOut)
	return nil
}

func applySet(doc *nrbf.Document, path, typ, raw string) error {
	switch typ {
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		return doc.SetBool(path, v)
	case "byte":
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return err
		}
		return doc.SetByte(path, byte(v))
	case "sbyte":
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return err
		}
		return doc.SetSByte(path, int8(v))
	case "char":
		if len([]rune(raw)) != 1 {
			return fmt.Errorf("char value must be exactly one rune, got %q", raw)
		}
		return doc.SetChar(path, []rune(raw)[0])
	case "int16":
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return err
		}
		return doc.SetInt16(path, int16(v))
	case "int32":
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return err
		}
		return doc.SetInt32(path, int32(v))
	case "int64":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		return doc.SetInt64(path, v)
	case "uint16":
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return err
		}
		return doc.SetUint16(path, uint16(v))
	case "uint32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return err
		}
		return doc.SetUint32(path, uint32(v))
	case "uint64":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		return doc.SetUint64(path, v)
	case "float32":
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return err
		}
		return doc.SetFloat32(path, float32(v))
	case "float64":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		return doc.SetFloat64(path, v)
	case "string":
		return doc.SetString(path, raw)
	case "guid":
		return doc.SetGuid(path, raw)
	default:
		return fmt.Errorf("unknown --type %q", typ)
	}
}
