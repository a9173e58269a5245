package usecase

import (
	"fmt"
	"strings"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"

	"github.com/dustin/go-humanize"
)

// Outbound texts. Every message is a pure function of stage, field values and
// validation outcome so tests can assert exact strings.

const (
	msgFallback          = "🤔 No entendí tu mensaje. ¿Puedes repetirlo?"
	msgCorrectionPrompt  = "✏️ ¿Qué campo quieres corregir? Puedes indicar: flete, carga, peso, fecha de cargue, fecha de descargue, placa, licencia, origen o destino."
	msgPaymentReceived   = "✅ Pago recibido. Escribe *generar* para expedir tu manifiesto."
	msgGenerationFailed  = "⚠️ No pudimos generar el manifiesto en este momento. Tus datos se conservan, intenta de nuevo en unos minutos."
	msgResetDone         = "🔄 Listo, empecemos de nuevo."
	msgConfirmQuestion   = "¿Los datos son correctos? Responde *sí* para continuar o dime qué campo quieres corregir."
	msgSummaryHeader     = "📋 Revisa los datos del manifiesto:"
	msgGenerationSuccess = "✅ Manifiesto generado. Referencia: %s\n\nCuando quieras puedes iniciar un nuevo manifiesto."
)

func promptMessage(f entities.FieldName) string {
	spec := f.Spec()
	return fmt.Sprintf("%s %s (ej: %s)", spec.Icon, spec.Prompt, spec.Example)
}

func rejectionMessage(rej *validation.RejectionError) string {
	spec := rej.Field.Spec()
	switch rej.Reason {
	case validation.ReasonFreightNotNumeric:
		return "❌ El flete debe ser un valor numérico. Por ejemplo: 150000 o $150,000"
	case validation.ReasonWeightNotNumeric:
		return "❌ El peso debe ser un valor numérico. Por ejemplo: 500 kg o 1.5 toneladas"
	case validation.ReasonLoadDateFormat:
		return "❌ La fecha de cargue no es válida. Usa hoy, mañana o el formato DD/MM/AAAA."
	case validation.ReasonPlateFormat:
		return "❌ La placa debe tener el formato ABC123."
	default:
		return fmt.Sprintf("❌ El campo %s no puede estar vacío.", strings.ToLower(spec.Label))
	}
}

func rejectionLines(rejected []*validation.RejectionError) string {
	lines := make([]string, 0, len(rejected))
	for _, rej := range rejected {
		lines = append(lines, rejectionMessage(rej))
	}
	return strings.Join(lines, "\n")
}

func summaryMessage(s entities.FormSession) string {
	var b strings.Builder
	b.WriteString(msgSummaryHeader)
	b.WriteString("\n\n")
	for _, f := range entities.FieldOrder {
		spec := f.Spec()
		fmt.Fprintf(&b, "%s %s: %s\n", spec.Icon, spec.Label, s.Fields[f].Value())
	}
	b.WriteString("\n")
	b.WriteString(msgConfirmQuestion)
	return b.String()
}

func paymentRequestMessage(amount int64) string {
	return fmt.Sprintf("💳 Para expedir el manifiesto debes pagar $%s COP. Avísame cuando hayas realizado el pago.", formatCOP(amount))
}

func correctionAppliedMessage(applied []entities.FieldName, s entities.FormSession) string {
	labels := make([]string, 0, len(applied))
	for _, f := range applied {
		labels = append(labels, f.Spec().Label)
	}
	return fmt.Sprintf("✏️ Actualicé: %s.\n\n%s", strings.Join(labels, ", "), summaryMessage(s))
}

// formatCOP renders 25000 as "25.000".
func formatCOP(amount int64) string {
	return strings.ReplaceAll(humanize.Comma(amount), ",", ".")
}
