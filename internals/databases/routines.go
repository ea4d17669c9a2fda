package database

import (
	"log"

	"gorm.io/gorm"
)

// insert_document_request is the single write boundary for a submission:
// the request row and every line item land in one transaction, or none do.
// Raises 'no valid documents' when the JSON array is empty.
const insertDocumentRequestDDL = `
CREATE OR REPLACE FUNCTION insert_document_request(
    p_student_id       BIGINT,
    p_student_name     TEXT,
    p_grade            TEXT,
    p_section          TEXT,
    p_contact_no       TEXT,
    p_email            TEXT,
    p_payment_method   TEXT,
    p_scheduled_pickup DATE,
    p_documents        JSONB
) RETURNS TABLE (request_id BIGINT, total_amount NUMERIC, message TEXT)
LANGUAGE plpgsql AS $$
DECLARE
    v_request_id BIGINT;
    v_total      NUMERIC(10,2) := 0;
    v_doc        JSONB;
    v_doc_id     BIGINT;
    v_qty        INT;
    v_price      NUMERIC(10,2);
    v_type       TEXT;
    v_count      INT := 0;
BEGIN
    IF p_documents IS NULL OR jsonb_array_length(p_documents) = 0 THEN
        RAISE EXCEPTION 'no valid documents';
    END IF;

    INSERT INTO document_requests
        (student_id, student_name, grade, section, contact_no, email,
         payment_method, scheduled_pick_up, status, total_amount, date_requested)
    VALUES
        (p_student_id, p_student_name, p_grade, p_section, p_contact_no, p_email,
         p_payment_method, p_scheduled_pickup, 'pending', 0, NOW())
    RETURNING document_requests.request_id INTO v_request_id;

    FOR v_doc IN SELECT * FROM jsonb_array_elements(p_documents)
    LOOP
        v_doc_id := (v_doc->>'id')::BIGINT;
        v_qty    := (v_doc->>'quantity')::INT;
        v_price  := (v_doc->>'price')::NUMERIC(10,2);

        CONTINUE WHEN v_doc_id IS NULL OR v_qty IS NULL OR v_qty <= 0;

        SELECT d.document_type INTO v_type FROM documents d WHERE d.document_id = v_doc_id;
        IF v_type IS NULL THEN
            v_type := 'Document #' || v_doc_id;
        END IF;

        INSERT INTO request_documents
            (request_id, document_id, document_type, quantity, unit_price, subtotal)
        VALUES
            (v_request_id, v_doc_id, v_type, v_qty, v_price, v_qty * v_price);

        v_total := v_total + v_qty * v_price;
        v_count := v_count + 1;
    END LOOP;

    IF v_count = 0 THEN
        RAISE EXCEPTION 'no valid documents';
    END IF;

    UPDATE document_requests dr SET total_amount = v_total WHERE dr.request_id = v_request_id;

    RETURN QUERY SELECT v_request_id, v_total, 'Document request submitted successfully!'::TEXT;
END;
$$;
`

// EnsureStoredRoutines installs the SQL routines the repositories call.
// Idempotent, safe to run at every boot.
func EnsureStoredRoutines(db *gorm.DB) {
	if err := db.Exec(insertDocumentRequestDDL).Error; err != nil {
		log.Fatalf("❌ Failed to install insert_document_request: %v", err)
	}
	log.Println("✅ Stored routines ready.")
}
