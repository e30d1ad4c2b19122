package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	domainregistry "participantes/internal/domain/registry"
	"participantes/internal/errs"
	"participantes/internal/usecase/registry"
)

var participantSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update one participant",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		flags := cmd.Flags()
		id, _ := flags.GetString("id")
		name, _ := flags.GetString("name")
		address, _ := flags.GetString("address")
		phone, _ := flags.GetString("phone")
		affiliation, _ := flags.GetString("affiliation")
		eventDate, _ := flags.GetString("date")
		locality, _ := flags.GetString("city")
		overwrite, _ := flags.GetBool("overwrite")

		if err := domainregistry.ValidateID(id); err != nil {
			return err
		}
		if err := domainregistry.ValidateName(name); err != nil {
			return err
		}
		if err := domainregistry.ValidatePhone(phone); err != nil {
			return err
		}
		if err := domainregistry.ValidateEventDate(eventDate, time.Now()); err != nil {
			return err
		}

		outcome, err := svc.SaveParticipant(ctx, registry.SaveParticipantInput{
			ID:           id,
			Name:         name,
			Address:      address,
			Phone:        phone,
			Affiliation:  affiliation,
			EventDate:    eventDate,
			LocalityName: locality,
			Overwrite:    overwrite,
		})
		if errors.Is(err, registry.ErrParticipantExists) {
			if _, werr := fmt.Fprintf(cmd.OutOrStdout(), "participant %s already exists; pass --overwrite to replace it\n", id); werr != nil {
				return errs.Wrap(werr, "write conflict output")
			}
			return err
		}
		if err != nil {
			logging.Error(ctx, "save participant failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "save participant")
		}

		verb := "updated"
		if outcome.Created {
			verb = "created"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "participant %s %s\n", outcome.ID, verb); err != nil {
			return errs.Wrap(err, "write save output")
		}
		return nil
	}),
}

func init() {
	participantCmd.AddCommand(participantSaveCmd)
	flags := participantSaveCmd.Flags()
	flags.String("id", "", "Identification number (required, digits only)")
	flags.String("name", "", "Full name")
	flags.String("address", "", "Address")
	flags.String("phone", "", "Mobile phone (10 digits)")
	flags.String("affiliation", "", "Organization the participant belongs to")
	flags.String("date", "", "Event date, dd/mm/yyyy")
	flags.String("city", "", "Municipality name (required)")
	flags.Bool("overwrite", false, "Replace the record when the id already exists")
	_ = participantSaveCmd.MarkFlagRequired("id")
	_ = participantSaveCmd.MarkFlagRequired("city")
}
