package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

func (a *App) Documents(ctx context.Context, _ []string) error {
	docs, err := a.admin.Documents(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTYPE\tCHUNKS\tVERSION")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", d.SourceFile, d.DocumentType, d.ChunksCount, d.Version)
	}
	return tw.Flush()
}

// DeleteDocument removes a document by its source file name, which may
// contain spaces.
func (a *App) DeleteDocument(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("doc-delete <source-file>")
	}
	name := strings.Join(args, " ")
	if err := a.admin.DeleteDocument(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", name)
	return nil
}

func (a *App) Templates(ctx context.Context, _ []string) error {
	tpls, err := a.admin.ContractTemplates(ctx)
	if err != nil {
		return err
	}
	if len(tpls) == 0 {
		fmt.Fprintln(a.out, "No contract templates")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFILE\tDEFAULT")
	for _, t := range tpls {
		file := ""
		if t.FileName != nil {
			file = *t.FileName
		}
		def := ""
		if t.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Name, file, def)
	}
	return tw.Flush()
}

func (a *App) DeleteTemplate(ctx context.Context, args []string) error {
	id, err := singleID(args, "template-delete <id>")
	if err != nil {
		return err
	}
	if err := a.admin.DeleteContractTemplate(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted template %d\n", id)
	return nil
}

// SendTemplate asks the bot to send the template file to the current user.
func (a *App) SendTemplate(ctx context.Context, args []string) error {
	id, err := singleID(args, "template-send <id>")
	if err != nil {
		return err
	}
	if err := a.admin.SendContractTemplate(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sent")
	return nil
}

func singleID(args []string, line string) (int64, error) {
	if len(args) != 1 {
		return 0, usage(line)
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, usage(line)
	}
	return id, nil
}
